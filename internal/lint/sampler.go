package lint

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	sitekit "github.com/alnah/go-sitekit"
	"github.com/alnah/go-sitekit/internal/fileutil"
)

// cardValidator checks cards against their `sampler` struct tags and
// reports fields by their data file key.
var cardValidator = newCardValidator()

func newCardValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("sampler")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func checkSampler(c *checker) error {
	path := c.cfg.Path(c.cfg.Sampler.Data)
	if !fileutil.FileExists(path) {
		c.errorf("", "Missing %s for sampler data.", c.cfg.Sampler.Data)
		return nil
	}

	cards, err := sitekit.LoadCards(path)
	switch {
	case errors.Is(err, sitekit.ErrNoCards):
		cards = nil
	case err != nil:
		c.errorf(c.rel(path), "%v", err)
		return nil
	}

	if want := c.cfg.Sampler.MinCards; len(cards) < want {
		c.errorf("", "Expected ≥%d cards in data, found %d.", want, len(cards))
	}

	for i, card := range cards {
		subject := fmt.Sprintf("Card %d", i+1)
		for _, msg := range cardProblems(card) {
			c.errorf(subject, "%s", msg)
		}
		for _, link := range card.Links {
			if link.Disabled {
				continue
			}
			if u := strings.TrimSpace(link.URL); u == "" || u == "#" {
				label := link.Label
				if label == "" {
					label = "unknown"
				}
				c.errorf(subject, "link '%s' missing URL.", label)
			}
		}
	}
	return nil
}

// cardProblems lists the unmet `sampler` constraints of a card in field order.
func cardProblems(card sitekit.Card) []string {
	err := cardValidator.Struct(card)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is "Card.teach.goal"; drop the type.
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		switch {
		case fe.Tag() == "min":
			msgs = append(msgs, field+" list is empty.")
		case strings.Contains(field, "."):
			msgs = append(msgs, field+" missing.")
		default:
			msgs = append(msgs, "missing "+field+" in data.")
		}
	}
	return msgs
}
