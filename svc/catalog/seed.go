package catalog

// DefaultProductCode is the product shown when a detail page is requested
// without a known reference.
const DefaultProductCode = "macbook-pro-16"

// SeedProducts returns the demo catalog. Prices are in Colombian pesos.
func SeedProducts() []Product {
	return []Product{
		{
			Code:          DefaultProductCode,
			Name:          "MacBook Pro 16",
			Description:   "Chip M3 Pro, 18GB de memoria unificada y pantalla Liquid Retina XDR de 16 pulgadas.",
			Price:         10_499_000,
			OriginalPrice: 11_999_000,
			Category:      CategoryLaptops,
			Brand:         "Apple",
			MainImage:     "https://images.unsplash.com/photo-1517336714731-489689fd1ca8.jpg",
			Images: []string{
				"https://images.unsplash.com/photo-1517336714731-489689fd1ca8.jpg",
				"https://images.unsplash.com/photo-1541807084-5c52b6b3adef.jpg",
			},
			Quantity: 12,
			Featured: true,
			Tags:     []string{"apple", "laptop", "m3"},
			Rating:   Rating{Average: 4.8, Count: 124, Breakdown: RatingBreakdown{Five: 104, Four: 15, Three: 5}},
		},
		{
			Code:        "galaxy-s24",
			Name:        "Samsung Galaxy S24",
			Description: "Smartphone con Galaxy AI, cámara de 50MP y pantalla Dynamic AMOLED 2X.",
			Price:       3_899_000,
			Category:    CategorySmartphones,
			Brand:       "Samsung",
			MainImage:   "https://images.unsplash.com/photo-1610945265064-0e34e5519bbf.jpg",
			Images:      []string{"https://images.unsplash.com/photo-1610945265064-0e34e5519bbf.jpg"},
			Quantity:    30,
			Tags:        []string{"samsung", "android"},
		},
		{
			Code:          "rtx-4070",
			Name:          "NVIDIA GeForce RTX 4070",
			Description:   "Tarjeta gráfica con 12GB GDDR6X, DLSS 3 y trazado de rayos de tercera generación.",
			Price:         2_899_000,
			OriginalPrice: 3_199_000,
			Category:      CategoryGaming,
			Brand:         "NVIDIA",
			MainImage:     "https://images.unsplash.com/photo-1591488320449-011701bb6704.jpg",
			Images:        []string{"https://images.unsplash.com/photo-1591488320449-011701bb6704.jpg"},
			Quantity:      4,
			Tags:          []string{"gpu", "nvidia", "gaming"},
		},
		{
			Code:        "airpods-pro",
			Name:        "AirPods Pro",
			Description: "Audífonos inalámbricos con cancelación activa de ruido y audio espacial.",
			Price:       1_100_000,
			Category:    CategoryAudio,
			Brand:       "Apple",
			MainImage:   "https://images.unsplash.com/photo-1600294037681-c80b4cb5b434.jpg",
			Images:      []string{"https://images.unsplash.com/photo-1600294037681-c80b4cb5b434.jpg"},
			Quantity:    0,
			Tags:        []string{"audio", "apple"},
		},
		{
			Code:        "dell-xps-13",
			Name:        "Laptop Dell XPS 13",
			Description: "Ultraportátil con procesador Intel Core Ultra 7 y pantalla InfinityEdge.",
			Price:       4_500_000,
			Category:    CategoryLaptops,
			Brand:       "Dell",
			MainImage:   "https://images.unsplash.com/photo-1593642702821-c8da6771f0c6.jpg",
			Images:      []string{"https://images.unsplash.com/photo-1593642702821-c8da6771f0c6.jpg"},
			Quantity:    8,
			Tags:        []string{"dell", "laptop"},
		},
		{
			Code:        "silla-gamer-pro",
			Name:        "Silla Gamer Pro",
			Description: "Silla ergonómica con soporte lumbar ajustable y reposabrazos 4D.",
			Price:       899_000,
			Category:    CategoryAccesorios,
			Brand:       "Cougar",
			MainImage:   "https://images.unsplash.com/photo-1598550476439-6847785fcea6.jpg",
			Images:      []string{"https://images.unsplash.com/photo-1598550476439-6847785fcea6.jpg"},
			Quantity:    15,
			Tags:        []string{"silla", "gaming"},
		},
		{
			Code:          "HK-1",
			Name:          "Hollow Knight",
			Description:   "Explora un reino subterráneo lleno de misterios, enfréntate a poderosos enemigos y descubre secretos ocultos.",
			Price:         63_000,
			OriginalPrice: 79_000,
			Category:      CategoryMetroidvania,
			Brand:         "Team Cherry",
			MainImage:     "https://i.ytimg.com/vi/U8Wz-VwX5dw/maxresdefault.jpg",
			Images: []string{
				"https://i.ytimg.com/vi/U8Wz-VwX5dw/maxresdefault.jpg",
				"https://images.squarespace-cdn.com/content/v1/606d159a953867291018f801/1617763465032-T3M2QQ4KMOTWS3EW7FC8/false_knight.jpg",
			},
			Quantity: 99,
			Tags:     []string{"metroidvania", "indie"},
		},
		{
			Code:          "GOW-2",
			Name:          "God Of War Ragnarök",
			Description:   "Una épica aventura de acción y mitología nórdica protagonizada por Kratos y su hijo Atreus.",
			Price:         239_000,
			OriginalPrice: 279_000,
			Category:      CategoryAventura,
			Brand:         "Santa Monica Studio",
			MainImage:     "https://image.api.playstation.com/vulcan/img/rnd/202010/2217/LsaRVLF2IU2L1FNtu9d3MKLq.jpg",
			Images: []string{
				"https://image.api.playstation.com/vulcan/img/rnd/202010/2217/LsaRVLF2IU2L1FNtu9d3MKLq.jpg",
				"https://alfabetajuega.com/hero/2024/11/god-of-war-ragnarok-portada.jpg?width=1200",
				"https://i.insider.com/5ad0b795146e711b008b4958?width=1125&format=jpeg",
			},
			Quantity: 40,
			Tags:     []string{"aventura", "playstation"},
		},
		{
			Code:          "ER-3",
			Name:          "Elden Ring",
			Description:   "Un vasto RPG de fantasía oscura con exploración libre y combates exigentes.",
			Price:         209_000,
			OriginalPrice: 239_000,
			Category:      CategoryRPG,
			Brand:         "FromSoftware",
			MainImage:     "https://i.blogs.es/c0b150/1024_2000/450_1000.jpeg",
			Images: []string{
				"https://i.blogs.es/c0b150/1024_2000/450_1000.jpeg",
				"https://static.bandainamcoent.eu/high/elden-ring/elden-ring/03-news/Starter_Guide/Elden_Ring_game_screen.jpg",
				"https://www.dsogaming.com/wp-content/uploads/2022/01/Elden-Ring-new-screenshots-1.jpg",
			},
			Quantity: 3,
			Tags:     []string{"rpg", "souls"},
		},
		{
			Code:          "ZLOZ-4",
			Name:          "The Legend of Zelda: Tears of the Kingdom",
			Description:   "Embárcate en una épica aventura en un mundo abierto lleno de misterio y fantasía en Hyrule.",
			Price:         279_000,
			OriginalPrice: 319_000,
			Category:      CategoryAventura,
			Brand:         "Nintendo",
			MainImage:     "https://i.blogs.es/309d15/the-legend-of-zelda-tears-of-the-kingdom-vale-la-pena-resena/1366_2000.jpeg",
			Images: []string{
				"https://i.blogs.es/309d15/the-legend-of-zelda-tears-of-the-kingdom-vale-la-pena-resena/1366_2000.jpeg",
				"https://i.ytimg.com/vi/wW7jkBJ_yK0/maxresdefault.jpg",
				"https://www.gamereactor.de/media/71/legendzelda_4017183.jpg",
			},
			Quantity: 25,
			Tags:     []string{"aventura", "nintendo"},
		},
	}
}
