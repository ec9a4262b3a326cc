package handlers

import (
	"github.com/jmoiron/sqlx"

	"emytrends/internal/config"
	"emytrends/internal/imaging"
	"emytrends/internal/repos"
	"emytrends/internal/services"
	"emytrends/internal/storage"
	"emytrends/internal/wordpress"
)

type Deps struct {
	Auth  *services.AuthService
	Store *storage.LocalStore

	AuthHandler      *AuthHandler
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	SearchHandler    *SearchHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	AddressHandler   *AddressHandler
	WishlistHandler  *WishlistHandler
	ProfileHandler   *ProfileHandler
	BlogHandler      *BlogHandler
	SettingsHandler  *SettingsHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) (*Deps, error) {
	store, err := storage.NewLocalStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		return nil, err
	}

	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	addrRepo := repos.NewAddressRepo(db)
	blogRepo := repos.NewBlogRepo(db)

	media := services.NewMediaService(store, imaging.Options{
		MaxWidth:     cfg.ImageMaxWidth,
		MaxHeight:    cfg.ImageMaxHeight,
		Quality:      cfg.ImageQuality,
		TargetSizeKB: cfg.ImageTargetKB,
	})
	authSvc := services.NewAuthService(userRepo)
	catalogSvc := services.NewCatalogService(prodRepo, media)
	invSvc := services.NewInventoryService(invRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, invRepo, orderRepo, addrRepo)
	blogSvc := services.NewBlogService(blogRepo, media, wordpress.New(cfg.WordPressURL, cfg.WordPressTTL))

	return &Deps{
		Auth:  authSvc,
		Store: store,

		AuthHandler:      &AuthHandler{Auth: authSvc, CookieSecure: cfg.CookieSecure},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		SearchHandler:    &SearchHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		OrderHandler:     &OrderHandler{Order: orderSvc},
		AddressHandler:   &AddressHandler{Addrs: services.NewAddressService(addrRepo)},
		WishlistHandler:  &WishlistHandler{Wish: services.NewWishlistService(repos.NewLocalStorageRepo(db)), Catalog: catalogSvc},
		ProfileHandler:   &ProfileHandler{Profiles: services.NewProfileService(repos.NewProfileRepo(db), media)},
		BlogHandler:      &BlogHandler{Blogs: blogSvc},
		SettingsHandler:  &SettingsHandler{Settings: services.NewSettingsService(repos.NewSettingsRepo(db))},
		AdminHandler: &AdminHandler{
			Analytics: services.NewAnalyticsService(prodRepo, orderRepo, blogRepo),
			Auth:      authSvc,
			Catalog:   catalogSvc,
			Blogs:     blogSvc,
		},
	}, nil
}
