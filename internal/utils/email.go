package utils

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wneessen/go-mail"

	"risearc_back_end/internal/models"
)

// SendOrderConfirmationEmail envoie le récapitulatif de commande.
// Best-effort : une commande déjà persistée ne doit jamais échouer
// parce que le SMTP est indisponible.
func SendOrderConfirmationEmail(to string, order *models.Order, productNames map[uint]string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️ SMTP_HOST absent — email de confirmation non envoyé")
		return nil
	}

	msg := mail.NewMsg()
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@risearc.com"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Confirmation de votre commande #%d", order.ID))
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(order, productNames))

	client, err := mail.NewClient(host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de confirmation à", to)
	return client.DialAndSend(msg)
}

func orderConfirmationHTML(order *models.Order, productNames map[uint]string) string {
	var rows strings.Builder
	for _, item := range order.Items {
		name := productNames[item.ProductID]
		if name == "" {
			name = fmt.Sprintf("Produit #%d", item.ProductID)
		}
		rows.WriteString(fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%s€</td>
				<td>%s€</td>
			</tr>`, name, item.Quantity,
			item.Price.StringFixed(2),
			item.TotalPrice().StringFixed(2)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Confirmation de commande</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande #%d</h2>
		<p>Bonjour,</p>
		<p>Votre commande a bien été enregistrée et est en attente de confirmation.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left;">Produit</th>
					<th style="padding: 8px; text-align: left;">Quantité</th>
					<th style="padding: 8px; text-align: left;">Prix unitaire</th>
					<th style="padding: 8px; text-align: left;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 8px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 8px; font-weight: bold;">%s€</td>
				</tr>
			</tfoot>
		</table>
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe RiseArc</strong>
		</p>
	</div>
</body>
</html>`, order.ID, rows.String(), totalString(order.TotalAmount))
}

func totalString(total decimal.Decimal) string {
	return total.StringFixed(2)
}
