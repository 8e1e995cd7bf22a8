package orderv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	MenuService_ListProducts_FullMethodName = "/order.v1.MenuService/ListProducts"
)

type Product struct {
	ID                  int32    `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Category            string   `json:"category"`
	Price               Money    `json:"price"`
	PriceLabel          string   `json:"price_label,omitempty"`
	SecondaryPrice      *Money   `json:"secondary_price,omitempty"`
	SecondaryPriceLabel string   `json:"secondary_price_label,omitempty"`
	BaseIngredients     []string `json:"base_ingredients,omitempty"`
}

type ListProductsRequest struct {
	// Category filters the menu; empty lists everything.
	Category string `json:"category,omitempty"`
}

type ListProductsResponse struct {
	Products   []*Product `json:"products"`
	Categories []string   `json:"categories"`
}

type MenuServiceServer interface {
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
}

type UnimplementedMenuServiceServer struct{}

func (UnimplementedMenuServiceServer) ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProducts not implemented")
}

var MenuService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "order.v1.MenuService",
	HandlerType: (*MenuServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListProducts",
			Handler:    unaryHandler(MenuService_ListProducts_FullMethodName, MenuServiceServer.ListProducts),
		},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterMenuServiceServer(s grpc.ServiceRegistrar, srv MenuServiceServer) {
	s.RegisterService(&MenuService_ServiceDesc, srv)
}

type MenuServiceClient interface {
	ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error)
}

type menuServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMenuServiceClient(cc grpc.ClientConnInterface) MenuServiceClient {
	return &menuServiceClient{cc}
}

func (c *menuServiceClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return invoke[ListProductsResponse](ctx, c.cc, MenuService_ListProducts_FullMethodName, in, opts)
}
