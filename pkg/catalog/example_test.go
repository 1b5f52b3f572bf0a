package catalog_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/cabinext/cabinext/pkg/catalog"
	"github.com/cabinext/cabinext/pkg/layout"
)

func ExampleClient_GenerateWall() {
	// A stand-in for the catalog service.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"cabinets":{"bases":[{"name":"SB36","width":36,"depth":24}],"uppers":[]}}`)
	}))
	defer srv.Close()

	client, err := catalog.NewClient(catalog.Config{BaseURL: srv.URL})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	mods, err := client.GenerateWall(context.Background(), layout.Top, 120, false)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, m := range mods.Bases {
		fmt.Printf("%s %gx%g base=%v\n", m.Name, m.Width, m.Depth, m.IsBase)
	}
	// Output:
	// SB36 36x24 base=true
}
