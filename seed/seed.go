package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jungle-swimwear/ecommerce-api/models"
	"github.com/jungle-swimwear/ecommerce-api/store"
)

var sizesAll = []string{"XS", "S", "M", "L", "XL"}

func fixtures() []models.Product {
	now := time.Now().UTC()
	return []models.Product{
		{
			ID:          uuid.NewString(),
			Name:        "Maillot Tropical Eden",
			Description: "Maillot une pièce élégant avec imprimé feuilles tropicales. Coupe flatteuse et tissu haute qualité résistant au chlore.",
			Price:       89.00,
			Images: []string{
				"https://images.unsplash.com/photo-1623114857732-02a86271e09f?w=800",
				"https://images.unsplash.com/photo-1623114857732-02a86271e09f?w=800&h=1000&fit=crop",
			},
			Category: "one-piece",
			Sizes:    sizesAll,
			Colors:   []string{"Vert jungle", "Noir", "Beige"},
			Stock:    perSizeStock([]string{"Vert jungle", "Noir"}, 10, 15, 20, 15, 10),
			Featured: true, CreatedAt: now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Bikini Feuillage Doré",
			Description: "Bikini deux pièces avec motif feuilles dorées sur fond crème. Bandeau amovible et bretelles ajustables.",
			Price:       75.00,
			Images: []string{
				"https://images.unsplash.com/photo-1559582930-8a89933bae60?w=800",
				"https://images.unsplash.com/photo-1559582930-8a89933bae60?w=800&h=1000&fit=crop",
			},
			Category: "bikini",
			Sizes:    sizesAll,
			Colors:   []string{"Doré", "Vert forêt"},
			Stock:    perSizeStock([]string{"Doré"}, 8, 12, 15, 12, 8),
			Featured: true, CreatedAt: now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Maillot Jungle Mystique",
			Description: "Maillot une pièce avec découpes élégantes et imprimé jungle sophistiqué. Effet sculptant et soutien optimal.",
			Price:       95.00,
			Images: []string{
				"https://images.unsplash.com/photo-1564051903-de6041e5ae75?w=800",
				"https://images.unsplash.com/photo-1564051903-de6041e5ae75?w=800&h=1000&fit=crop",
			},
			Category: "one-piece",
			Sizes:    sizesAll,
			Colors:   []string{"Vert émeraude", "Noir tropical"},
			Stock:    perSizeStock([]string{"Vert émeraude"}, 10, 15, 18, 15, 10),
			Featured: true, CreatedAt: now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Bikini Palmes d'Or",
			Description: "Ensemble bikini triangle avec imprimé palmes dorées. Tissu doux et confortable, séchage rapide.",
			Price:       68.00,
			Images: []string{
				"https://images.unsplash.com/photo-1587723958656-ee042cc565a1?w=800",
				"https://images.unsplash.com/photo-1587723958656-ee042cc565a1?w=800&h=1000&fit=crop",
			},
			Category: "bikini",
			Sizes:    sizesAll,
			Colors:   []string{"Sable doré", "Vert olive"},
			Stock:    perSizeStock([]string{"Sable doré"}, 12, 18, 20, 15, 10),
			CreatedAt: now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Tankini Tropique Chic",
			Description: "Tankini deux pièces avec haut long flatteuse et bas taille haute. Parfait pour un confort optimal.",
			Price:       82.00,
			Images: []string{
				"https://images.unsplash.com/photo-1566895291281-e72c3c6ce394?w=800",
				"https://images.unsplash.com/photo-1566895291281-e72c3c6ce394?w=800&h=1000&fit=crop",
			},
			Category: "tankini",
			Sizes:    sizesAll,
			Colors:   []string{"Vert jungle", "Terracotta"},
			Stock:    perSizeStock([]string{"Vert jungle"}, 10, 15, 18, 15, 12),
			CreatedAt: now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Paréo Feuillage Élégant",
			Description: "Paréo léger en voile imprimé feuilles tropicales. Peut se porter de multiples façons, parfait pour la plage.",
			Price:       45.00,
			Images: []string{
				"https://images.unsplash.com/photo-1594633313593-bab3825d0caf?w=800",
				"https://images.unsplash.com/photo-1594633313593-bab3825d0caf?w=800&h=1000&fit=crop",
			},
			Category: "cover-up",
			Sizes:    []string{"Unique"},
			Colors:   []string{"Vert jungle", "Sable doré", "Terracotta"},
			Stock: map[string]int{
				"Unique-Vert jungle": 25,
				"Unique-Sable doré":  20,
				"Unique-Terracotta":  15,
			},
			CreatedAt: now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Maillot Cascade Verte",
			Description: "Maillot une pièce avec dégradé vert forêt. Décolleté plongeant et dos nageur pour un look sportif chic.",
			Price:       92.00,
			Images: []string{
				"https://images.unsplash.com/photo-1551799804-c6f26e2e9f7c?w=800",
				"https://images.unsplash.com/photo-1551799804-c6f26e2e9f7c?w=800&h=1000&fit=crop",
			},
			Category: "one-piece",
			Sizes:    sizesAll,
			Colors:   []string{"Vert cascade", "Bleu lagon"},
			Stock:    perSizeStock([]string{"Vert cascade"}, 10, 15, 20, 15, 10),
			CreatedAt: now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Bikini Nature Sauvage",
			Description: "Bikini imprimé léopard vert et or. Bretelles croisées dans le dos et culotte taille haute.",
			Price:       78.00,
			Images: []string{
				"https://images.unsplash.com/photo-1582639590011-f5a8416d1101?w=800",
				"https://images.unsplash.com/photo-1582639590011-f5a8416d1101?w=800&h=1000&fit=crop",
			},
			Category: "bikini",
			Sizes:    sizesAll,
			Colors:   []string{"Léopard vert", "Python doré"},
			Stock:    perSizeStock([]string{"Léopard vert"}, 8, 12, 15, 12, 8),
			CreatedAt: now,
		},
	}
}

// Products inserts the swimwear catalog fixtures when the table is empty.
func Products(ctx context.Context, products store.Products) error {
	n, err := products.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		log.Printf("seed: %d products present, skipping", n)
		return nil
	}

	for _, p := range fixtures() {
		product := p
		if err := products.Create(ctx, &product); err != nil {
			return fmt.Errorf("seed product %q: %w", product.Name, err)
		}
	}
	log.Printf("seed: catalog seeded")
	return nil
}

// perSizeStock builds the "SIZE-Color" stock map for the given colors with
// per-size quantities ordered XS..XL.
func perSizeStock(colors []string, xs, s, m, l, xl int) map[string]int {
	counts := []int{xs, s, m, l, xl}
	stock := make(map[string]int, len(colors)*len(sizesAll))
	for _, color := range colors {
		for i, size := range sizesAll {
			stock[size+"-"+color] = counts[i]
		}
	}
	return stock
}
