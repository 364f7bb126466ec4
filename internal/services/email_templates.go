package services

// verificationEmailHTML takes: heading, escaped name, intro, link, link,
// year.
const verificationEmailHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Confirm your pledge</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f8f9fa; margin: 0; padding: 20px; }
  .container { max-width: 500px; margin: auto; background: #ffffff; border: 1px solid #e9ecef; border-radius: 8px; overflow: hidden; }
  .header { background-color: #5b3a9d; color: white; padding: 20px; text-align: center; }
  .header h1 { margin: 0; font-size: 24px; }
  .content { padding: 30px; text-align: center; }
  .button { display: inline-block; background-color: #5b3a9d; color: #ffffff !important; text-decoration: none; font-weight: bold; padding: 14px 28px; border-radius: 6px; margin: 20px 0; }
  .link { word-break: break-all; font-size: 12px; color: #6c757d; }
  .footer { background-color: #f8f9fa; padding: 20px; text-align: center; font-size: 12px; color: #6c757d; }
  p { margin-bottom: 1em; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      <p>Hi %s,</p>
      <p>%s</p>
      <a class="button" href="%s">Verify my signature</a>
      <p class="link">Or paste this link into your browser:<br>%s</p>
      <p>If you did not sign the pledge, you can safely ignore this email.</p>
    </div>
    <div class="footer">
      © %d Poof. All rights reserved.
    </div>
  </div>
</body>
</html>`

const verificationEmailText = `Hi %s,

%s

Verify your signature: %s

If you did not sign the pledge, you can safely ignore this email.`
