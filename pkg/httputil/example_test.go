package httputil_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cabinext/cabinext/pkg/cache"
	"github.com/cabinext/cabinext/pkg/httputil"
)

func ExampleRetry() {
	attempts := 0
	err := httputil.Retry(context.Background(), 3, time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			return httputil.Retryable(errors.New("connection reset"))
		}
		return nil
	})
	fmt.Println("attempts:", attempts)
	fmt.Println("error:", err)
	// Output:
	// attempts: 3
	// error: <nil>
}

func ExampleJSONCache_Cached() {
	ctx := context.Background()
	c := httputil.NewJSONCache(cache.NewNullCache(), cache.KeyTypeCatalog, time.Hour)

	var widths []int
	hit, err := c.Cached(ctx, "top:120", false, &widths, func() error {
		widths = []int{36, 24, 30}
		return nil
	})
	fmt.Println("hit:", hit, "err:", err)
	fmt.Println("widths:", widths)
	// Output:
	// hit: false err: <nil>
	// widths: [36 24 30]
}
