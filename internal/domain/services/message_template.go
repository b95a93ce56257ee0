package services

import (
	"fmt"
	"regexp"
	"strings"

	"binreminder-http-service/internal/domain/models"
)

// 模板中允许出现的占位符集合，未知占位符会被移除而不是原样输出
var (
	placeholderPattern = regexp.MustCompile(`\{[a-z_]+\}`)
	knownPlaceholders  = map[string]bool{
		"{first_name}":  true,
		"{flat_number}": true,
	}
)

// RenderTemplate 将模板中的{first_name}和{flat_number}替换为住户信息
func RenderTemplate(template string, resident *models.Resident) string {
	replaced := strings.NewReplacer(
		"{first_name}", resident.FirstName(),
		"{flat_number}", resident.FlatNumber,
	).Replace(template)

	// 移除剩余的未知占位符
	return placeholderPattern.ReplaceAllStringFunc(replaced, func(ph string) string {
		if knownPlaceholders[ph] {
			return ph
		}
		return ""
	})
}

// BuildTextMessage 生成短信/WhatsApp使用的纯文本消息，附带报修链接和联系人信息
func BuildTextMessage(template string, resident *models.Resident, settings *models.SystemSettings, subject string) string {
	body := RenderTemplate(template, resident)

	ownerName := settings.OwnerName
	if ownerName == "" {
		ownerName = "Admin"
	}
	footer := fmt.Sprintf("\n\nReport an issue: %s\nContact %s at %s.",
		settings.ReportIssueLink, ownerName, settings.OwnerContactWhatsApp)

	if subject != "" {
		return fmt.Sprintf("Announcement: %s\n%s%s", subject, body, footer)
	}
	return body + footer
}

// BuildHTMLMessage 生成邮件正文HTML
func BuildHTMLMessage(template string, resident *models.Resident, settings *models.SystemSettings, subject string) string {
	if subject == "" {
		subject = "Bin Duty Reminder"
	}
	body := strings.ReplaceAll(RenderTemplate(template, resident), "\n", "<br>")

	ownerName := settings.OwnerName
	if ownerName == "" {
		ownerName = "Admin"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>%s</title>
<style>
body { font-family: 'Poppins', sans-serif; background-color: #f4f4f4; color: #333; margin: 0; padding: 0; }
.container { max-width: 600px; margin: 20px auto; background-color: #ffffff; border-radius: 8px; overflow: hidden; border: 1px solid #e8e8e8; }
.header { background-color: #4A90E2; color: #ffffff; padding: 30px; text-align: center; }
.content { padding: 30px; line-height: 1.7; color: #555; }
.button { display: inline-block; padding: 12px 25px; background-color: #50C878; color: #ffffff !important; text-decoration: none; border-radius: 50px; font-weight: 600; }
.footer { padding: 20px; font-size: 12px; color: #888; text-align: center; background-color: #f9f9f9; border-top: 1px solid #e8e8e8; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>%s</h1></div>
<div class="content">
<p>Hi %s,</p>
<p>%s</p>
<div style="text-align:center;margin-top:25px;"><a href="%s" class="button">Report an Issue</a></div>
</div>
<div class="footer"><p>This is an automated message. For urgent enquiries, please contact %s at %s.</p></div>
</div>
</body>
</html>`, subject, subject, resident.FirstName(), body, settings.ReportIssueLink, ownerName, settings.OwnerContactWhatsApp)
}

// BuildOwnerIssueEmail 生成新报修通知邮件的HTML
func BuildOwnerIssueEmail(issue *models.Issue, settings *models.SystemSettings) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8"><title>New Maintenance Issue</title>
<style>
body { font-family: 'Poppins', sans-serif; background-color: #f9fafb; color: #374151; margin: 0; padding: 20px; }
.container { max-width: 560px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; border: 1px solid #e5e7eb; }
.header { background-color: #FF5A5F; color: #ffffff; padding: 24px; text-align: center; }
.content { padding: 32px; color: #4b5563; }
.details-box { background-color: #f3f4f6; border: 1px solid #e5e7eb; border-radius: 8px; padding: 20px; margin-top: 20px; }
.button { display: inline-block; padding: 14px 28px; background-color: #3B82F6; color: #ffffff !important; text-decoration: none; border-radius: 50px; font-weight: 600; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>New Issue Reported</h1></div>
<div class="content">
<h2>A new maintenance issue has been submitted.</h2>
<div class="details-box">
<p><strong>Reported By:</strong> %s</p>
<p><strong>Flat Number:</strong> %s</p>
<p><strong>Description:</strong></p>
<p>%s</p>
</div>
<div style="text-align:center;margin-top:30px;"><a href="%s" class="button">View All Issues</a></div>
</div>
</div>
</body>
</html>`, issue.ReportedBy, issue.FlatNumber, issue.Description, IssuesLink(settings))
}

// IssuesLink 从报修链接推导管理端报修列表地址
func IssuesLink(settings *models.SystemSettings) string {
	base := settings.ReportIssueLink
	if idx := strings.LastIndex(base, "/report"); idx >= 0 {
		base = base[:idx]
	}
	if base == "" {
		return "/issues"
	}
	return base + "/issues"
}
