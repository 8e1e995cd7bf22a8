package handler

import (
	"context"
	"net"
	"testing"

	orderv1 "github.com/fekuna/omnipos-order-service/api/orderv1"
	"github.com/fekuna/omnipos-order-service/internal/catalog"
	"github.com/fekuna/omnipos-order-service/internal/catalog/repository"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func newClient(t *testing.T) orderv1.MenuServiceClient {
	t.Helper()
	menu, err := catalog.Load(context.Background(), repository.NewEmbeddedRepository())
	if err != nil {
		t.Fatal(err)
	}

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	orderv1.RegisterMenuServiceServer(srv, NewMenuHandler(menu, logger.NewNop()))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return orderv1.NewMenuServiceClient(conn)
}

func TestListProducts(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	all, err := client.ListProducts(ctx, &orderv1.ListProductsRequest{})
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(all.Products) != 50 || len(all.Categories) != 9 {
		t.Errorf("products = %d, categories = %d", len(all.Products), len(all.Categories))
	}

	drinks, err := client.ListProducts(ctx, &orderv1.ListProductsRequest{Category: "Bebidas"})
	if err != nil {
		t.Fatal(err)
	}
	if len(drinks.Products) != 5 {
		t.Errorf("drinks = %d, want 5", len(drinks.Products))
	}
	for _, p := range drinks.Products {
		if p.Category != "Bebidas" || p.Price.Display == "" {
			t.Errorf("drink = %+v", p)
		}
	}
}

func TestListProducts_TwoTier(t *testing.T) {
	client := newClient(t)
	resp, err := client.ListProducts(context.Background(), &orderv1.ListProductsRequest{Category: "Hamburguesas"})
	if err != nil {
		t.Fatal(err)
	}
	first := resp.Products[0]
	if first.SecondaryPrice == nil || first.PriceLabel != "Sin Papa" || first.SecondaryPriceLabel != "Con Papa" {
		t.Errorf("burger = %+v", first)
	}
}

func TestListProducts_UnknownCategory(t *testing.T) {
	client := newClient(t)
	_, err := client.ListProducts(context.Background(), &orderv1.ListProductsRequest{Category: "Pizzas"})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("code = %v, want InvalidArgument", status.Code(err))
	}
}
