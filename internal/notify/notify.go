// Package notify renders the itemized order summary sent to the restaurant
// and builds the WhatsApp link that carries it.
package notify

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/order"
	"github.com/fekuna/omnipos-order-service/internal/pricing"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

type Config struct {
	Restaurant string
	Phone      string
	Locale     string
}

type Composer struct {
	restaurant string
	phone      string
	localizer  *i18n.Localizer
}

func NewComposer(cfg Config) (*Composer, error) {
	bundle := i18n.NewBundle(language.Spanish)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, file := range []string{"locales/active.es.json", "locales/active.en.json"} {
		if _, err := bundle.LoadMessageFileFS(locales, file); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	locale := cfg.Locale
	if locale == "" {
		locale = language.Spanish.String()
	}
	return &Composer{
		restaurant: cfg.Restaurant,
		phone:      cfg.Phone,
		localizer:  i18n.NewLocalizer(bundle, locale),
	}, nil
}

// CartSummary is the message a customer sends to place the cart as an order.
func (c *Composer) CartSummary(lines []model.CartItem) string {
	items := order.Snapshot(lines)
	var b strings.Builder
	b.WriteString(c.t("Greeting", map[string]interface{}{"Restaurant": c.restaurant}))
	b.WriteString("\n\n")
	c.writeItems(&b, items)
	b.WriteString("\n")
	b.WriteString(c.t("TotalLine", map[string]interface{}{"Total": pricing.FormatCOP(pricing.CartTotal(lines))}))
	return b.String()
}

// OrderSummary is the ticket for a placed order, headed by its table or
// delivery contact.
func (c *Composer) OrderSummary(o *model.Order) string {
	var b strings.Builder
	if o.IsDineIn() {
		b.WriteString(c.t("TableLine", map[string]interface{}{"Table": o.Table()}))
	} else {
		b.WriteString(c.t("DeliveryLine", map[string]interface{}{
			"Name":  deref(o.CustomerName),
			"Phone": deref(o.CustomerPhone),
		}))
	}
	b.WriteString("\n\n")
	c.writeItems(&b, o.Items)
	b.WriteString("\n")
	b.WriteString(c.t("TotalLine", map[string]interface{}{"Total": pricing.FormatCOP(o.Total)}))
	return b.String()
}

// Link returns the WhatsApp deep link for text addressed to the restaurant.
func (c *Composer) Link(text string) string {
	return WhatsAppLink(c.phone, text)
}

func WhatsAppLink(phone, text string) string {
	return "https://wa.me/" + phone + "?text=" + encodeComponent(text)
}

func (c *Composer) writeItems(b *strings.Builder, items model.OrderItems) {
	for _, item := range items {
		b.WriteString(c.t("ItemLine", map[string]interface{}{
			"Quantity":  item.Quantity,
			"Name":      item.ProductName,
			"Variant":   item.Variant,
			"LineTotal": pricing.FormatCOP(item.LineTotal()),
		}))
		b.WriteString("\n")
		for _, name := range item.Added {
			b.WriteString(c.t("AddedLine", map[string]interface{}{"Name": name}))
			b.WriteString("\n")
		}
		for _, name := range item.Removed {
			b.WriteString(c.t("RemovedLine", map[string]interface{}{"Name": name}))
			b.WriteString("\n")
		}
		if item.Notes != "" {
			b.WriteString(c.t("NotesLine", map[string]interface{}{"Notes": item.Notes}))
			b.WriteString("\n")
		}
		if item.ComboDrink != nil {
			b.WriteString(c.t("DrinkLine", map[string]interface{}{"Name": *item.ComboDrink}))
			b.WriteString("\n")
		}
	}
}

func (c *Composer) t(id string, data map[string]interface{}) string {
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil && msg == "" {
		return id
	}
	return msg
}

// encodeComponent escapes like encodeURIComponent: spaces become %20, not "+".
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
