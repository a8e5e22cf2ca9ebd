package handlers

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nft-tickets-backend/models"
)

var verificationPage = template.Must(template.New("verify").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Ticket Verification - NFT Tickets</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body { font-family: Arial, sans-serif; background: #0f172a; color: white; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; }
        .valid { background: linear-gradient(135deg, #10b981, #059669); padding: 20px; border-radius: 10px; }
        .invalid { background: linear-gradient(135deg, #ef4444, #dc2626); padding: 20px; border-radius: 10px; }
        .ticket-info { background: #1e293b; padding: 20px; border-radius: 10px; margin-top: 20px; }
        .status { font-size: 24px; font-weight: bold; margin-bottom: 10px; }
        .detail { margin: 10px 0; }
        .label { color: #94a3b8; }
    </style>
</head>
<body>
    <div class="container">
{{- if .IsValid}}
        <div class="valid">
            <div class="status">&#9989; Valid Ticket</div>
            <p>This NFT ticket has been verified on the blockchain.</p>
        </div>
        <div class="ticket-info">
            <h2>Ticket Details</h2>
            <div class="detail"><span class="label">Token ID:</span> #{{.Ticket.TokenID}}</div>
            <div class="detail"><span class="label">Event:</span> {{.Ticket.EventName}}</div>
            <div class="detail"><span class="label">Date:</span> {{.Ticket.Date}}</div>
            <div class="detail"><span class="label">Venue:</span> {{.Ticket.Venue}}</div>
            <div class="detail"><span class="label">Seat:</span> {{.Ticket.Seat}}</div>
            <div class="detail"><span class="label">Status:</span> {{.Status}}</div>
            <div class="detail"><span class="label">Verified:</span> {{.Ticket.VerifiedAt}}</div>
        </div>
{{- else}}
        <div class="invalid">
            <div class="status">&#10060; Invalid Ticket</div>
            <p>Token ID #{{.TokenID}} was not found or is invalid.</p>
            <p>Please check the token ID and try again.</p>
        </div>
{{- end}}
    </div>
</body>
</html>
`))

type verificationPageData struct {
	models.VerifyTicketResponse
	TokenID int64
	// Status is the ticket status with its first letter capitalized, the
	// way the page has always displayed it.
	Status string
}

func renderVerificationPage(c *gin.Context, tokenID int64, result models.VerifyTicketResponse) {
	data := verificationPageData{VerifyTicketResponse: result, TokenID: tokenID}
	if result.Ticket != nil {
		data.Status = titleCase(result.Ticket.Status)
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := verificationPage.Execute(c.Writer, data); err != nil {
		// Headers are already out; nothing useful left to send.
		_ = c.Error(err)
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
