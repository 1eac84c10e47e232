package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/droptracker-backend/pkg/db/models"
)

// SeedItem is one default catalog definition.
type SeedItem struct {
	Name        string
	Description string
	ImageURL    string
}

const wikiImages = "https://www.tibiawiki.com.br/images/"

// PrimalBagItems are the possible drops of a Primal Bag.
var PrimalBagItems = []SeedItem{
	{"Alicorn Headguard", "A magic helmet crowned with a unicorn horn", wikiImages + "e/e5/Alicorn_Headguard.gif"},
	{"Alicorn Quiver", "A quiver enchanted with mystic powers", wikiImages + "c/c3/Alicorn_Quiver.gif"},
	{"Alicorn Ring", "A ring holding unicorn powers", wikiImages + "0/0c/Alicorn_Ring.gif"},
	{"Arboreal Crown", "A crown made of natural elements", wikiImages + "a/a5/Arboreal_Crown.gif"},
	{"Arboreal Ring", "A ring holding the powers of nature", wikiImages + "9/9c/Arboreal_Ring.gif"},
	{"Arboreal Tome", "An ancient book of nature lore", wikiImages + "d/d0/Arboreal_Tome.gif"},
	{"Arcanomancer Folio", "A scroll of arcane spells", wikiImages + "0/0e/Arcanomancer_Folio.gif"},
	{"Arcanomancer Regalia", "Robes of a powerful arcanist", wikiImages + "e/e5/Arcanomancer_Regalia.gif"},
	{"Arcanomancer Sigil", "A symbol of arcane power", wikiImages + "a/a1/Arcanomancer_Sigil.gif"},
	{"Spiritthorn Armor", "An armor made of spirit thorns", wikiImages + "0/0c/Spiritthorn_Armor.gif"},
	{"Spiritthorn Helmet", "A helmet made of spirit thorns", wikiImages + "5/5c/Spiritthorn_Helmet.gif"},
	{"Spiritthorn Ring", "A ring holding spiritual powers", wikiImages + "d/d0/Spiritthorn_Ring.gif"},
	{"Abomination's Eye", "The eye of an abominable creature", wikiImages + "d/d2/Abomination%27s_Eye.gif"},
	{"Abomination's Tail", "The tail of an abominable creature", wikiImages + "1/1c/Abomination%27s_Tail.gif"},
	{"Abomination's Tongue", "The tongue of an abominable creature", wikiImages + "1/1c/Abomination%27s_Tongue.gif"},
	{"Abyssador's Lash", "A whip of the dreaded Abyssador", wikiImages + "0/0c/Abyssador%27s_Lash.gif"},
}

type seedRepository interface {
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, items []models.CatalogItem) error
}

// Seed inserts items only when the catalog is empty and returns how many rows
// were written.
func Seed(ctx context.Context, repo seedRepository, items []SeedItem) (int, error) {
	if repo == nil {
		return 0, fmt.Errorf("catalog repository required")
	}
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count catalog items: %w", err)
	}
	if count > 0 || len(items) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.CatalogItem{
			Name:        item.Name,
			Description: optional(item.Description),
			ImageURL:    optional(item.ImageURL),
			CreatedAt:   now,
		})
	}
	if err := repo.CreateBatch(ctx, rows); err != nil {
		return 0, fmt.Errorf("insert catalog items: %w", err)
	}
	return len(rows), nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
