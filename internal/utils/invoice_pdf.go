package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"

	"elvara_back_end/internal/models"
)

// GenerateOrderQR génère un QR encodant la référence de commande, en base64
// prêt à mettre dans <img src="...">. Le livreur le scanne à la remise du
// colis pour retrouver la commande.
func GenerateOrderQR(order models.Order) (string, error) {
	payload := fmt.Sprintf("ELVARA:%s", order.ID.String())

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// BuildInvoiceHTML assemble la facture paiement-à-la-livraison.
func BuildInvoiceHTML(order models.Order, qrBase64 string) string {
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
<head><meta charset="utf-8"><style>
	body { font-family: Georgia, serif; color: #222; margin: 40px; }
	table { border-collapse: collapse; width: 100%%; }
	th, td { border: 1px solid #999; padding: 8px; text-align: left; }
	.total { font-size: 1.2em; margin-top: 20px; }
</style></head>
<body>
	<h1 style="letter-spacing: 2px;">ELVARA &amp; CO.</h1>
	<h2>Facture — Commande %s</h2>
	<p>Date : %s<br>
	Client : %s — %s<br>
	Livraison : %s</p>
	<table>
		<tr><th>Article</th><th>Taille</th><th>Quantité</th><th>Prix unitaire</th><th>Sous-total</th></tr>
		%s
	</table>
	<p class="total"><strong>Total à régler à la livraison : %.2f MAD</strong></p>
	<img src="%s" width="128" height="128" alt="QR commande">
</body>
</html>`,
		order.ID.String(), order.CreatedAt.Format("02/01/2006 15:04"),
		order.CustomerName, order.CustomerPhone, order.ShippingAddress,
		itemsHTML, order.TotalAmount, qrBase64)
}

// RenderInvoicePDF imprime la facture HTML en PDF via un Chrome headless.
func RenderInvoicePDF(parent context.Context, html string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(parent)
	defer cancel()

	// timeout pour éviter de bloquer
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(dataURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
