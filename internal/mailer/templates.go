package mailer

import "html/template"

var verificationTemplate = template.Must(template.New("verification").Parse(`
<div style="max-width: 600px; margin: 0 auto; padding: 20px; font-family: Arial, sans-serif;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #3B82F6; margin: 0;">XZMovies</h1>
    <p style="color: #6B7280; margin: 5px 0;">Your Ultimate Movie Destination</p>
  </div>

  <div style="background: #F9FAFB; padding: 30px; border-radius: 8px; border: 1px solid #E5E7EB;">
    <h2 style="color: #1F2937; margin-top: 0;">Welcome to XZMovies, {{.Name}}!</h2>

    <p style="color: #4B5563; line-height: 1.6;">
      Thank you for signing up! To complete your registration and start exploring amazing movies,
      please verify your email address by clicking the button below.
    </p>

    <div style="text-align: center; margin: 30px 0;">
      <a href="{{.LinkURL}}"
         style="background: #3B82F6; color: white; padding: 12px 30px; text-decoration: none;
                border-radius: 6px; font-weight: bold; display: inline-block;">
        Verify My Email
      </a>
    </div>

    <p style="color: #6B7280; font-size: 14px; margin-bottom: 10px;">
      If the button doesn't work, copy and paste this link into your browser:
    </p>
    <p style="color: #3B82F6; word-break: break-all; font-size: 14px;">
      {{.LinkURL}}
    </p>

    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #E5E7EB;">
      <p style="color: #6B7280; font-size: 14px; margin: 0;">
        <strong>Important:</strong> This verification link will expire in 24 hours for security reasons.
      </p>
      <p style="color: #6B7280; font-size: 14px; margin: 10px 0 0 0;">
        If you didn't create an account with XZMovies, please ignore this email.
      </p>
    </div>
  </div>

  <div style="text-align: center; margin-top: 30px; color: #9CA3AF; font-size: 12px;">
    <p>&copy; 2025 XZMovies. All rights reserved.</p>
  </div>
</div>
`))

var resetTemplate = template.Must(template.New("reset").Parse(`
<div style="max-width: 600px; margin: 0 auto; padding: 20px; font-family: Arial, sans-serif;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #3B82F6; margin: 0;">XZMovies</h1>
    <p style="color: #6B7280; margin: 5px 0;">Your Ultimate Movie Destination</p>
  </div>

  <div style="background: #F9FAFB; padding: 30px; border-radius: 8px; border: 1px solid #E5E7EB;">
    <h2 style="color: #1F2937; margin-top: 0;">Password Reset Request</h2>

    <p style="color: #4B5563; line-height: 1.6;">
      Hello {{.Name}},
    </p>

    <p style="color: #4B5563; line-height: 1.6;">
      We received a request to reset your password for your XZMovies account. If you didn't make this request,
      you can safely ignore this email.
    </p>

    <div style="text-align: center; margin: 30px 0;">
      <a href="{{.LinkURL}}"
         style="background: #EF4444; color: white; padding: 12px 30px; text-decoration: none;
                border-radius: 6px; font-weight: bold; display: inline-block;">
        Reset My Password
      </a>
    </div>

    <p style="color: #6B7280; font-size: 14px; margin-bottom: 10px;">
      If the button doesn't work, copy and paste this link into your browser:
    </p>
    <p style="color: #3B82F6; word-break: break-all; font-size: 14px;">
      {{.LinkURL}}
    </p>

    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #E5E7EB;">
      <p style="color: #6B7280; font-size: 14px; margin: 0;">
        <strong>Important:</strong> This password reset link will expire in 1 hour for security reasons.
      </p>
      <p style="color: #6B7280; font-size: 14px; margin: 10px 0 0 0;">
        If you didn't request a password reset, please ignore this email or contact support if you have concerns.
      </p>
    </div>
  </div>

  <div style="text-align: center; margin-top: 30px; color: #9CA3AF; font-size: 12px;">
    <p>&copy; 2025 XZMovies. All rights reserved.</p>
  </div>
</div>
`))
