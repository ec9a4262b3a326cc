package services

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"emytrends/internal/domain"
	"emytrends/internal/repos"
)

const recentOrders = 5

type AnalyticsService struct {
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
	Blogs  *repos.BlogRepo
}

func NewAnalyticsService(prods *repos.ProductRepo, orders *repos.OrderRepo, blogs *repos.BlogRepo) *AnalyticsService {
	return &AnalyticsService{Prods: prods, Orders: orders, Blogs: blogs}
}

type Summary struct {
	TotalProducts     int             `json:"totalProducts"`
	TotalOrders       int             `json:"totalOrders"`
	TotalBlogs        int             `json:"totalBlogs"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	PendingOrders     int             `json:"pendingOrders"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	AverageItems      decimal.Decimal `json:"averageItemsPerOrder"`
	RecentOrders      []domain.Order  `json:"recentOrders"`
}

// Summary loads everything in parallel; one failed read fails the summary.
// Revenue sums item totals and leaves delivery fees out.
func (s *AnalyticsService) Summary(ctx context.Context) (Summary, error) {
	var (
		products []domain.Product
		orders   []domain.Order
		blogs    []domain.BlogPost
		recent   []domain.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { products, err = s.Prods.All(gctx); return })
	g.Go(func() (err error) { orders, err = s.Orders.All(gctx); return })
	g.Go(func() (err error) { blogs, err = s.Blogs.All(gctx); return })
	g.Go(func() (err error) { recent, err = s.Orders.Recent(gctx, recentOrders); return })
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	sum := Summary{
		TotalProducts:     len(products),
		TotalOrders:       len(orders),
		TotalBlogs:        len(blogs),
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		AverageItems:      decimal.Zero,
		RecentOrders:      recent,
	}
	for _, o := range orders {
		sum.TotalRevenue = sum.TotalRevenue.Add(o.TotalAmount)
		if o.Status.Pending() {
			sum.PendingOrders++
		}
	}
	if len(orders) > 0 {
		sum.AverageOrderValue = sum.TotalRevenue.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}
	if len(recent) > 0 {
		lines := 0
		for _, o := range recent {
			lines += len(o.Items)
		}
		sum.AverageItems = decimal.NewFromInt(int64(lines)).Div(decimal.NewFromInt(int64(len(recent)))).Round(1)
	}
	return sum, nil
}
