package handlers

import (
	"net/url"
	"strconv"

	"github.com/GunarsK-portfolio/blog-service/internal/service"
	"github.com/gin-gonic/gin"
)

// Paginated is the payload of list endpoints.
type Paginated struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// pageFromQuery reads ?page=N. A missing value means the first page.
func pageFromQuery(c *gin.Context, size int) (service.Page, error) {
	raw := c.Query("page")
	if raw == "" {
		return service.Page{Number: 1, Size: size}, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return service.Page{}, service.ErrInvalidPage
	}
	return service.Page{Number: n, Size: size}, nil
}

func paginate(c *gin.Context, page service.Page, total int64, results interface{}) Paginated {
	p := Paginated{Count: total, Results: results}
	if int64(page.Number*page.Size) < total {
		next := pageURL(c, page.Number+1)
		p.Next = &next
	}
	if page.Number > 1 {
		prev := pageURL(c, page.Number-1)
		p.Previous = &prev
	}
	return p
}

// pageURL rebuilds the absolute request URL pointing at page n. The first
// page is addressed without a page parameter.
func pageURL(c *gin.Context, n int) string {
	u := url.URL{
		Scheme: "http",
		Host:   c.Request.Host,
		Path:   c.Request.URL.Path,
	}
	if c.Request.TLS != nil {
		u.Scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		u.Scheme = proto
	}

	q := c.Request.URL.Query()
	if n <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(n))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
