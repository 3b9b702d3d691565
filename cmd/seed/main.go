package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"portfolio-pulse/internal/client"
	"portfolio-pulse/internal/services/content"

	"github.com/brianvoe/gofakeit/v6"
)

// ----------------------------------------------------------------------------
// Config ---------------------------------------------------------------------
var (
	baseURL = flag.String("url", env("API_BASE_URL", "http://localhost:8080"), "Server base URL")
	email   = flag.String("email", env("EMAIL", "admin@example.com"), "Admin e-mail")
	pass    = flag.String("pass", env("PASSWORD", "Password123"), "Admin password")
	nItems  = flag.Int("n", envInt("COUNT", 8), "How many documents per list collection")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil && i > 0 {
			return i
		}
	}
	return def
}

// ----------------------------------------------------------------------------
// Main -----------------------------------------------------------------------
func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	fmt.Printf("Seeding portfolio content as %s (n=%d per collection) on %s\n", *email, *nItems, *baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	api := client.New(*baseURL)
	if err := api.Login(ctx, *email, *pass); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL: login:", err)
		os.Exit(1)
	}
	fmt.Println("• signed in")

	if err := seedAll(ctx, api, *nItems); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	fmt.Println("✔ done")
}

// ----------------------------------------------------------------------------
// Generators ------------------------------------------------------------------

// singletons are created once, list collections get n documents each.
var singletons = map[string]func() content.Document{
	"profile": func() content.Document {
		return content.Document{
			"name":     gofakeit.Name(),
			"title":    gofakeit.JobTitle(),
			"summary":  gofakeit.Paragraph(1, 3, 30, " "),
			"location": gofakeit.City(),
			"email":    gofakeit.Email(),
		}
	},
}

var lists = map[string]func() content.Document{
	"skills": func() content.Document {
		return content.Document{
			"name":     gofakeit.ProgrammingLanguage(),
			"level":    gofakeit.Number(1, 10),
			"category": gofakeit.RandomString([]string{"backend", "frontend", "infra", "data"}),
		}
	},
	"experience": func() content.Document {
		start := gofakeit.DateRange(time.Now().AddDate(-12, 0, 0), time.Now().AddDate(-1, 0, 0))
		return content.Document{
			"company":   gofakeit.Company(),
			"role":      gofakeit.JobTitle(),
			"startDate": start.Format("2006-01"),
			"endDate":   start.AddDate(gofakeit.Number(1, 4), 0, 0).Format("2006-01"),
			"summary":   gofakeit.Paragraph(1, 2, 25, " "),
		}
	},
	"leadership": func() content.Document {
		return content.Document{
			"title":   gofakeit.JobTitle(),
			"org":     gofakeit.Company(),
			"year":    gofakeit.Year(),
			"summary": gofakeit.Sentence(12),
		}
	},
	"certificates": func() content.Document {
		return content.Document{
			"name":   gofakeit.BuzzWord() + " Certification",
			"issuer": gofakeit.Company(),
			"year":   gofakeit.Year(),
			"url":    gofakeit.URL(),
		}
	},
	"socialLinks": func() content.Document {
		return content.Document{
			"label": gofakeit.RandomString([]string{"GitHub", "LinkedIn", "Mastodon", "Blog"}),
			"url":   gofakeit.URL(),
		}
	},
	"messages": func() content.Document {
		return content.Document{
			"from":    gofakeit.Email(),
			"subject": gofakeit.Sentence(4),
			"body":    gofakeit.Paragraph(1, 2, 30, " "),
		}
	},
}

func seedAll(ctx context.Context, api *client.Client, perCollection int) error {
	for name, gen := range singletons {
		if err := seedCollection(ctx, api, name, gen, 1); err != nil {
			return err
		}
	}
	for name, gen := range lists {
		if err := seedCollection(ctx, api, name, gen, perCollection); err != nil {
			return err
		}
	}
	return nil
}

func seedCollection(ctx context.Context, api *client.Client, name string, gen func() content.Document, total int) error {
	for i := 1; i <= total; i++ {
		if _, err := api.Create(ctx, name, gen()); err != nil {
			return fmt.Errorf("create %s %d/%d: %w", name, i, total, err)
		}
	}
	fmt.Printf("  … %s: %d\n", name, total)
	return nil
}
