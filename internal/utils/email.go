package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"elvara_back_end/internal/models"
)

// SendOrderConfirmationEmail envoie l'e-mail de confirmation de commande.
// Paiement à la livraison: l'e-mail rappelle le montant à préparer.
func SendOrderConfirmationEmail(to string, order models.Order) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@elvara.ma"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("ELVARA & CO. — Confirmation de votre commande %s", order.ID.String()))
	msg.SetBodyString(mail.TypeTextHTML, GenerateOrderConfirmationHTML(order))

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
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

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		size := item.Size
		if size == "" {
			size = "—"
		}
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f MAD</td>
				<td>%.2f MAD</td>
			</tr>`, item.Name, size, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Georgia, serif; color: #222;">
	<h1 style="letter-spacing: 2px;">ELVARA &amp; CO.</h1>
	<p>Bonjour %s,</p>
	<p>Votre commande <strong>%s</strong> a bien été enregistrée.</p>
	<table border="1" cellpadding="6" cellspacing="0" style="border-collapse: collapse;">
		<tr><th>Article</th><th>Taille</th><th>Quantité</th><th>Prix</th><th>Sous-total</th></tr>
		%s
	</table>
	<p><strong>Total à régler à la livraison : %.2f MAD</strong></p>
	<p>Livraison à : %s</p>
	<p>Nous vous contacterons au %s pour organiser la livraison.</p>
</body>
</html>`,
		order.CustomerName, order.ID.String(), itemsHTML,
		order.TotalAmount, order.ShippingAddress, order.CustomerPhone)
}
