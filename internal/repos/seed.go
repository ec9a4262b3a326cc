package repos

import (
	"context"
	_ "embed"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"emytrends/internal/domain"
	applog "emytrends/internal/log"
)

//go:embed seed.yaml
var seedYAML []byte

type seedUser struct {
	ID       string `yaml:"id"`
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Password string `yaml:"password"`
}

type seedProduct struct {
	ID                string `yaml:"id"`
	Title             string `yaml:"title"`
	Description       string `yaml:"description"`
	Price             string `yaml:"price"`
	Category          string `yaml:"category"`
	HairExtensionType string `yaml:"hairExtensionType"`
	Badge             string `yaml:"badge"`
	Images            []string
	Shades            []string
	Lengths           []string
	ColorSwatches     []struct {
		Color string `yaml:"color"`
		Name  string `yaml:"name"`
	} `yaml:"colorSwatches"`
	LengthOptions []struct {
		Label string `yaml:"label"`
		Price string `yaml:"price"`
	} `yaml:"lengthOptions"`
	FAQItems []domain.FAQItem `yaml:"faqItems"`
	Related  []string         `yaml:"relatedProductIds"`
	InStock  bool             `yaml:"inStock"`
	Featured bool             `yaml:"featured"`
}

type seedBlog struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Excerpt   string   `yaml:"excerpt"`
	Content   string   `yaml:"content"`
	Author    string   `yaml:"author"`
	Category  string   `yaml:"category"`
	Tags      []string `yaml:"tags"`
	Published bool     `yaml:"published"`
}

type seedFile struct {
	Users    []seedUser    `yaml:"users"`
	Products []seedProduct `yaml:"products"`
	Blogs    []seedBlog    `yaml:"blogs"`
}

// Seed inserts the demo accounts, catalog and blog posts. Rows that already
// exist are left alone, so it is safe on every start.
func Seed(db *sqlx.DB) error {
	var f seedFile
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return errors.Wrap(err, "parse seed")
	}
	ctx := context.Background()

	users := NewUserRepo(db)
	for _, u := range f.Users {
		h, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return errors.Wrap(err, "hash seed password")
		}
		if err := users.Ensure(ctx, domain.User{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, Hash: string(h)}); err != nil {
			return err
		}
	}

	products := NewProductRepo(db)
	added := 0
	for _, sp := range f.Products {
		p, err := sp.product()
		if err != nil {
			return err
		}
		ok, err := products.Ensure(ctx, p)
		if err != nil {
			return err
		}
		if ok {
			added++
		}
	}

	blogs := NewBlogRepo(db)
	for _, sb := range f.Blogs {
		b := domain.BlogPost{
			ID: sb.ID, Title: sb.Title, Excerpt: sb.Excerpt, Content: sb.Content,
			Author: sb.Author, Category: sb.Category, Tags: sb.Tags, Published: sb.Published,
		}
		if _, err := blogs.Ensure(ctx, b); err != nil {
			return err
		}
	}

	if err := NewSettingsRepo(db).EnsureDefault(ctx); err != nil {
		return err
	}
	if added > 0 {
		applog.L().Info("db.seed", zap.Int("products", added))
	}
	return nil
}

func (sp seedProduct) product() (domain.Product, error) {
	price, err := decimal.NewFromString(sp.Price)
	if err != nil {
		return domain.Product{}, errors.Wrapf(err, "seed product %s price", sp.ID)
	}
	p := domain.Product{
		ID: sp.ID, Title: sp.Title, Description: sp.Description, Price: price,
		Category: sp.Category, HairExtensionType: sp.HairExtensionType, Badge: sp.Badge,
		Images: sp.Images, Shades: sp.Shades, Lengths: sp.Lengths, FAQItems: sp.FAQItems,
		RelatedProductIDs: sp.Related, InStock: sp.InStock, Featured: sp.Featured,
	}
	for i, s := range sp.ColorSwatches {
		p.ColorSwatches = append(p.ColorSwatches, domain.ColorSwatch{ID: sp.ID + "-swatch-" + strconv.Itoa(i+1), Color: s.Color, Name: s.Name})
	}
	for i, o := range sp.LengthOptions {
		lo := domain.LengthOption{ID: sp.ID + "-length-" + strconv.Itoa(i+1), Label: o.Label}
		if o.Price != "" {
			d, err := decimal.NewFromString(o.Price)
			if err != nil {
				return domain.Product{}, errors.Wrapf(err, "seed product %s length price", sp.ID)
			}
			lo.Price = &d
		}
		p.LengthOptions = append(p.LengthOptions, lo)
	}
	return p, nil
}
