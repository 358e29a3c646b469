package gateway

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"dataware/internal/common"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Route forwards every request under Prefix to Target with the path unchanged.
type Route struct {
	Prefix string
	Target *url.URL
}

// RouteTable builds the two service routes.
func RouteTable(productServiceURL, orderServiceURL string) ([]Route, error) {
	products, err := parseTarget("PRODUCT_SERVICE_URL", productServiceURL)
	if err != nil {
		return nil, err
	}
	orders, err := parseTarget("ORDER_SERVICE_URL", orderServiceURL)
	if err != nil {
		return nil, err
	}
	return []Route{
		{Prefix: "/api/products", Target: products},
		{Prefix: "/api/orders", Target: orders},
	}, nil
}

func parseTarget(name, raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("invalid %s %q: must be an absolute http(s) URL", name, raw)
	}
	return u, nil
}

// Register mounts one proxy group per route on e.
func Register(e *echo.Echo, routes []Route) {
	for _, route := range routes {
		target := route.Target
		e.Group(route.Prefix, middleware.ProxyWithConfig(middleware.ProxyConfig{
			Balancer: middleware.NewRoundRobinBalancer([]*middleware.ProxyTarget{
				{Name: route.Prefix, URL: target},
			}),
			ErrorHandler: func(c echo.Context, err error) error {
				log.Printf("ERROR: proxy %s %s to %s failed: %v", c.Request().Method, c.Request().URL.Path, target, err)
				return c.JSON(http.StatusServiceUnavailable, common.CreateErrorResponse("SERVICE_UNAVAILABLE",
					fmt.Sprintf("upstream %s unavailable", target.Host), nil))
			},
		}))
		log.Printf("INFO: routing %s/* to %s", route.Prefix, target)
	}
}
