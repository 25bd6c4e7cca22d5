// Package message renders the bilingual follow-up text sent to customers.
package message

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/TemirB/kaspi-feedback/internal/domain"
	"github.com/TemirB/kaspi-feedback/internal/watchlist"
)

// Divider separates the language blocks.
const Divider = "= = = = = = = = = = = = = = = = = = = ="

const keyFollowUp = "follow-up"

// Arguments: 1 customer name, 2 store, 3 product, 4 review URL.
var templates = map[language.Tag]string{
	language.Kazakh: `Сәлеметсіз бе, %[1]s!

%[2]s дүкенінде:
%[3]s

сатып алуыңызбен құттықтаймыз. Сізге бәрі ұнады деп үміттенеміз.
Біз үшін әрбір тұтынушымыздың пікірі өте маңызды, сондықтан осында біздің дүкеннің атын көрсете отырып, пікір қалдыруыңызды сұраймыз:
%[4]s

Алдын-ала рахмет!
Ізгі ниетпен, %[2]s!`,

	language.Russian: `Здравствуйте, %[1]s!

Поздравляем с покупкой!
Мы очень рады, что вы приобрели:
%[3]s

именно в магазине %[2]s и надеемся, что вам все понравилось!
Пожалуйста, оставьте отзыв, для нас это крайне важно:
%[4]s

Заранее вам признательны!
С уважением, компания %[2]s!`,
}

// Composer is safe for concurrent use; it holds no mutable state after New.
type Composer struct {
	reviewURL string
	rating    int
	langs     []language.Tag
	printers  map[language.Tag]*message.Printer
}

func New(reviewURL string, rating int) (*Composer, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.Russian))
	for tag, tmpl := range templates {
		if err := b.SetString(tag, keyFollowUp, tmpl); err != nil {
			return nil, err
		}
	}

	c := &Composer{
		reviewURL: reviewURL,
		rating:    rating,
		langs:     []language.Tag{language.Kazakh, language.Russian},
		printers:  make(map[language.Tag]*message.Printer),
	}
	for _, tag := range c.langs {
		c.printers[tag] = message.NewPrinter(tag, message.Catalog(b))
	}
	return c, nil
}

// Compose renders both language blocks for the order.
func (c *Composer) Compose(o domain.OrderRecord) string {
	link := c.ReviewLink(o)

	blocks := make([]string, 0, len(c.langs))
	for _, tag := range c.langs {
		blocks = append(blocks, c.printers[tag].Sprintf(keyFollowUp, o.CustomerName, o.Store, o.ProductName, link))
	}
	return strings.Join(blocks, "\n\n"+Divider+"\n\n")
}

// ReviewLink points the customer at the product review form with the top
// rating preselected.
func (c *Composer) ReviewLink(o domain.OrderRecord) string {
	q := url.Values{}
	q.Set("orderCode", o.OrderCode)
	q.Set("productCode", ArticleCode(o))
	q.Set("rating", strconv.Itoa(c.rating))
	return c.reviewURL + "?" + q.Encode()
}

// ArticleCode is the stored article, completed with a legacy suffix field
// when the article has no variant marker of its own.
func ArticleCode(o domain.OrderRecord) string {
	art := strings.TrimSpace(o.Article)
	if art == "" || strings.Contains(art, watchlist.SuffixDelimiter) {
		return art
	}
	suf := strings.TrimSpace(o.ArticleSuffix)
	if suf == "" {
		suf = strings.TrimSpace(o.ProductCodeSuffix)
	}
	if suf == "" {
		return art
	}
	return art + watchlist.SuffixDelimiter + suf
}
