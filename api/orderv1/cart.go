package orderv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	CartService_GetCart_FullMethodName           = "/order.v1.CartService/GetCart"
	CartService_AddDirect_FullMethodName         = "/order.v1.CartService/AddDirect"
	CartService_AddCustomized_FullMethodName     = "/order.v1.CartService/AddCustomized"
	CartService_UpdateQuantity_FullMethodName    = "/order.v1.CartService/UpdateQuantity"
	CartService_RemoveLine_FullMethodName        = "/order.v1.CartService/RemoveLine"
	CartService_AttachDrink_FullMethodName       = "/order.v1.CartService/AttachDrink"
	CartService_DetachDrink_FullMethodName       = "/order.v1.CartService/DetachDrink"
	CartService_SwitchTier_FullMethodName        = "/order.v1.CartService/SwitchTier"
	CartService_Clear_FullMethodName             = "/order.v1.CartService/Clear"
	CartService_Checkout_FullMethodName          = "/order.v1.CartService/Checkout"
	CartService_CheckoutIntoOrder_FullMethodName = "/order.v1.CartService/CheckoutIntoOrder"
	CartService_ShareLink_FullMethodName         = "/order.v1.CartService/ShareLink"
)

type Variant struct {
	Label string `json:"label"`
	Price Money  `json:"price"`
}

type ProductRef struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Price Money  `json:"price"`
}

type CartLine struct {
	ID          int64         `json:"id"`
	ProductID   int32         `json:"product_id"`
	ProductName string        `json:"product_name"`
	Category    string        `json:"category"`
	Quantity    int32         `json:"quantity"`
	Variant     Variant       `json:"variant"`
	Added       []*ProductRef `json:"added"`
	Removed     []string      `json:"removed"`
	Notes       string        `json:"notes,omitempty"`
	ComboDrink  *ProductRef   `json:"combo_drink,omitempty"`
	UnitPrice   Money         `json:"unit_price"`
	LineTotal   Money         `json:"line_total"`
}

type Cart struct {
	SessionID string      `json:"session_id"`
	Lines     []*CartLine `json:"lines"`
	ItemCount int32       `json:"item_count"`
	Total     Money       `json:"total"`
	Visible   bool        `json:"visible"`
}

type AddDirectRequest struct {
	ProductID int32 `json:"product_id"`
}

// AddCustomizedRequest adds a configured line. UseSecondaryTier selects the
// second price tier of two-tier products.
type AddCustomizedRequest struct {
	ProductID        int32    `json:"product_id"`
	UseSecondaryTier bool     `json:"use_secondary_tier"`
	AddedIDs         []int32  `json:"added_ids"`
	Removed          []string `json:"removed"`
	Notes            string   `json:"notes"`
}

type UpdateQuantityRequest struct {
	LineID   int64 `json:"line_id"`
	Quantity int32 `json:"quantity"`
}

type LineRequest struct {
	LineID int64 `json:"line_id"`
}

type AttachDrinkRequest struct {
	LineID  int64 `json:"line_id"`
	DrinkID int32 `json:"drink_id"`
}

type SwitchTierRequest struct {
	LineID    int64 `json:"line_id"`
	Secondary bool  `json:"secondary"`
}

type CheckoutRequest struct {
	OrderType     string `json:"order_type"`
	TableNumber   int32  `json:"table_number,omitempty"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
}

type CheckoutIntoOrderRequest struct {
	OrderID string `json:"order_id"`
}

type CheckoutResponse struct {
	Order *Order `json:"order"`
	Cart  *Cart  `json:"cart"`
}

type ShareLinkResponse struct {
	Summary string `json:"summary"`
	Link    string `json:"link"`
}

type CartServiceServer interface {
	GetCart(context.Context, *emptypb.Empty) (*Cart, error)
	AddDirect(context.Context, *AddDirectRequest) (*Cart, error)
	AddCustomized(context.Context, *AddCustomizedRequest) (*Cart, error)
	UpdateQuantity(context.Context, *UpdateQuantityRequest) (*Cart, error)
	RemoveLine(context.Context, *LineRequest) (*Cart, error)
	AttachDrink(context.Context, *AttachDrinkRequest) (*Cart, error)
	DetachDrink(context.Context, *LineRequest) (*Cart, error)
	SwitchTier(context.Context, *SwitchTierRequest) (*Cart, error)
	Clear(context.Context, *emptypb.Empty) (*Cart, error)
	Checkout(context.Context, *CheckoutRequest) (*CheckoutResponse, error)
	CheckoutIntoOrder(context.Context, *CheckoutIntoOrderRequest) (*CheckoutResponse, error)
	ShareLink(context.Context, *emptypb.Empty) (*ShareLinkResponse, error)
}

type UnimplementedCartServiceServer struct{}

func (UnimplementedCartServiceServer) GetCart(context.Context, *emptypb.Empty) (*Cart, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCart not implemented")
}
func (UnimplementedCartServiceServer) AddDirect(context.Context, *AddDirectRequest) (*Cart, error) {
	return nil, status.Error(codes.Unimplemented, "method AddDirect not implemented")
}
func (UnimplementedCartServiceServer) AddCustomized(context.Context, *AddCustomizedRequest) (*Cart, error) {
	return nil, status.Error(codes.Unimplemented, "method AddCustomized not implemented")
}
func (UnimplementedCartServiceServer) UpdateQuantity(context.Context, *UpdateQuantityRequest) (*Cart, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateQuantity not implemented")
}
func (UnimplementedCartServiceServer) RemoveLine(context.Context, *LineRequest) (*Cart, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveLine not implemented")
}
func (UnimplementedCartServiceServer) AttachDrink(context.Context, *AttachDrinkRequest) (*Cart, error) {
	return nil, status.Error(codes.Unimplemented, "method AttachDrink not implemented")
}
func (UnimplementedCartServiceServer) DetachDrink(context.Context, *LineRequest) (*Cart, error) {
	return nil, status.Error(codes.Unimplemented, "method DetachDrink not implemented")
}
func (UnimplementedCartServiceServer) SwitchTier(context.Context, *SwitchTierRequest) (*Cart, error) {
	return nil, status.Error(codes.Unimplemented, "method SwitchTier not implemented")
}
func (UnimplementedCartServiceServer) Clear(context.Context, *emptypb.Empty) (*Cart, error) {
	return nil, status.Error(codes.Unimplemented, "method Clear not implemented")
}
func (UnimplementedCartServiceServer) Checkout(context.Context, *CheckoutRequest) (*CheckoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Checkout not implemented")
}
func (UnimplementedCartServiceServer) CheckoutIntoOrder(context.Context, *CheckoutIntoOrderRequest) (*CheckoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckoutIntoOrder not implemented")
}
func (UnimplementedCartServiceServer) ShareLink(context.Context, *emptypb.Empty) (*ShareLinkResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ShareLink not implemented")
}

var CartService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "order.v1.CartService",
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetCart", Handler: unaryHandler(CartService_GetCart_FullMethodName, CartServiceServer.GetCart)},
		{MethodName: "AddDirect", Handler: unaryHandler(CartService_AddDirect_FullMethodName, CartServiceServer.AddDirect)},
		{MethodName: "AddCustomized", Handler: unaryHandler(CartService_AddCustomized_FullMethodName, CartServiceServer.AddCustomized)},
		{MethodName: "UpdateQuantity", Handler: unaryHandler(CartService_UpdateQuantity_FullMethodName, CartServiceServer.UpdateQuantity)},
		{MethodName: "RemoveLine", Handler: unaryHandler(CartService_RemoveLine_FullMethodName, CartServiceServer.RemoveLine)},
		{MethodName: "AttachDrink", Handler: unaryHandler(CartService_AttachDrink_FullMethodName, CartServiceServer.AttachDrink)},
		{MethodName: "DetachDrink", Handler: unaryHandler(CartService_DetachDrink_FullMethodName, CartServiceServer.DetachDrink)},
		{MethodName: "SwitchTier", Handler: unaryHandler(CartService_SwitchTier_FullMethodName, CartServiceServer.SwitchTier)},
		{MethodName: "Clear", Handler: unaryHandler(CartService_Clear_FullMethodName, CartServiceServer.Clear)},
		{MethodName: "Checkout", Handler: unaryHandler(CartService_Checkout_FullMethodName, CartServiceServer.Checkout)},
		{MethodName: "CheckoutIntoOrder", Handler: unaryHandler(CartService_CheckoutIntoOrder_FullMethodName, CartServiceServer.CheckoutIntoOrder)},
		{MethodName: "ShareLink", Handler: unaryHandler(CartService_ShareLink_FullMethodName, CartServiceServer.ShareLink)},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterCartServiceServer(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&CartService_ServiceDesc, srv)
}

type CartServiceClient interface {
	GetCart(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*Cart, error)
	AddDirect(ctx context.Context, in *AddDirectRequest, opts ...grpc.CallOption) (*Cart, error)
	AddCustomized(ctx context.Context, in *AddCustomizedRequest, opts ...grpc.CallOption) (*Cart, error)
	UpdateQuantity(ctx context.Context, in *UpdateQuantityRequest, opts ...grpc.CallOption) (*Cart, error)
	RemoveLine(ctx context.Context, in *LineRequest, opts ...grpc.CallOption) (*Cart, error)
	AttachDrink(ctx context.Context, in *AttachDrinkRequest, opts ...grpc.CallOption) (*Cart, error)
	DetachDrink(ctx context.Context, in *LineRequest, opts ...grpc.CallOption) (*Cart, error)
	SwitchTier(ctx context.Context, in *SwitchTierRequest, opts ...grpc.CallOption) (*Cart, error)
	Clear(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*Cart, error)
	Checkout(ctx context.Context, in *CheckoutRequest, opts ...grpc.CallOption) (*CheckoutResponse, error)
	CheckoutIntoOrder(ctx context.Context, in *CheckoutIntoOrderRequest, opts ...grpc.CallOption) (*CheckoutResponse, error)
	ShareLink(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ShareLinkResponse, error)
}

type cartServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCartServiceClient(cc grpc.ClientConnInterface) CartServiceClient {
	return &cartServiceClient{cc}
}

func (c *cartServiceClient) GetCart(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*Cart, error) {
	return invoke[Cart](ctx, c.cc, CartService_GetCart_FullMethodName, in, opts)
}

func (c *cartServiceClient) AddDirect(ctx context.Context, in *AddDirectRequest, opts ...grpc.CallOption) (*Cart, error) {
	return invoke[Cart](ctx, c.cc, CartService_AddDirect_FullMethodName, in, opts)
}

func (c *cartServiceClient) AddCustomized(ctx context.Context, in *AddCustomizedRequest, opts ...grpc.CallOption) (*Cart, error) {
	return invoke[Cart](ctx, c.cc, CartService_AddCustomized_FullMethodName, in, opts)
}

func (c *cartServiceClient) UpdateQuantity(ctx context.Context, in *UpdateQuantityRequest, opts ...grpc.CallOption) (*Cart, error) {
	return invoke[Cart](ctx, c.cc, CartService_UpdateQuantity_FullMethodName, in, opts)
}

func (c *cartServiceClient) RemoveLine(ctx context.Context, in *LineRequest, opts ...grpc.CallOption) (*Cart, error) {
	return invoke[Cart](ctx, c.cc, CartService_RemoveLine_FullMethodName, in, opts)
}

func (c *cartServiceClient) AttachDrink(ctx context.Context, in *AttachDrinkRequest, opts ...grpc.CallOption) (*Cart, error) {
	return invoke[Cart](ctx, c.cc, CartService_AttachDrink_FullMethodName, in, opts)
}

func (c *cartServiceClient) DetachDrink(ctx context.Context, in *LineRequest, opts ...grpc.CallOption) (*Cart, error) {
	return invoke[Cart](ctx, c.cc, CartService_DetachDrink_FullMethodName, in, opts)
}

func (c *cartServiceClient) SwitchTier(ctx context.Context, in *SwitchTierRequest, opts ...grpc.CallOption) (*Cart, error) {
	return invoke[Cart](ctx, c.cc, CartService_SwitchTier_FullMethodName, in, opts)
}

func (c *cartServiceClient) Clear(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*Cart, error) {
	return invoke[Cart](ctx, c.cc, CartService_Clear_FullMethodName, in, opts)
}

func (c *cartServiceClient) Checkout(ctx context.Context, in *CheckoutRequest, opts ...grpc.CallOption) (*CheckoutResponse, error) {
	return invoke[CheckoutResponse](ctx, c.cc, CartService_Checkout_FullMethodName, in, opts)
}

func (c *cartServiceClient) CheckoutIntoOrder(ctx context.Context, in *CheckoutIntoOrderRequest, opts ...grpc.CallOption) (*CheckoutResponse, error) {
	return invoke[CheckoutResponse](ctx, c.cc, CartService_CheckoutIntoOrder_FullMethodName, in, opts)
}

func (c *cartServiceClient) ShareLink(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ShareLinkResponse, error) {
	return invoke[ShareLinkResponse](ctx, c.cc, CartService_ShareLink_FullMethodName, in, opts)
}
