package orderv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	OrderService_ListActive_FullMethodName         = "/order.v1.OrderService/ListActive"
	OrderService_GetOrder_FullMethodName           = "/order.v1.OrderService/GetOrder"
	OrderService_Advance_FullMethodName            = "/order.v1.OrderService/Advance"
	OrderService_UpdateStatus_FullMethodName       = "/order.v1.OrderService/UpdateStatus"
	OrderService_Cancel_FullMethodName             = "/order.v1.OrderService/Cancel"
	OrderService_Settle_FullMethodName             = "/order.v1.OrderService/Settle"
	OrderService_UpdateItemQuantity_FullMethodName = "/order.v1.OrderService/UpdateItemQuantity"
	OrderService_ListTables_FullMethodName         = "/order.v1.OrderService/ListTables"
	OrderService_WatchOrders_FullMethodName        = "/order.v1.OrderService/WatchOrders"
	OrderService_WatchTables_FullMethodName        = "/order.v1.OrderService/WatchTables"
)

type OrderItem struct {
	ProductName  string   `json:"product_name"`
	Quantity     int32    `json:"quantity"`
	Variant      string   `json:"variant"`
	VariantPrice Money    `json:"variant_price"`
	UnitPrice    Money    `json:"unit_price"`
	LineTotal    Money    `json:"line_total"`
	Added        []string `json:"added"`
	Removed      []string `json:"removed"`
	Notes        string   `json:"notes,omitempty"`
	ComboDrink   string   `json:"combo_drink,omitempty"`
}

// Order is a placed order. Local is set while the store has not confirmed it.
type Order struct {
	ID            string       `json:"id"`
	Items         []*OrderItem `json:"items"`
	Total         Money        `json:"total"`
	Status        string       `json:"status"`
	OrderType     string       `json:"order_type"`
	TableNumber   int32        `json:"table_number,omitempty"`
	CustomerName  string       `json:"customer_name,omitempty"`
	CustomerPhone string       `json:"customer_phone,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
	Local         bool         `json:"local"`
	Actions       []string     `json:"actions"`
}

type OrderIDRequest struct {
	ID string `json:"id"`
}

type UpdateStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type UpdateItemQuantityRequest struct {
	OrderID  string `json:"order_id"`
	Index    int32  `json:"index"`
	Quantity int32  `json:"quantity"`
}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

type TableStatus struct {
	Number         int32    `json:"number"`
	Occupied       bool     `json:"occupied"`
	OrderID        string   `json:"order_id,omitempty"`
	Status         string   `json:"status,omitempty"`
	Total          Money    `json:"total"`
	Elapsed        string   `json:"elapsed,omitempty"`
	ElapsedSeconds int64    `json:"elapsed_seconds"`
	Overdue        bool     `json:"overdue"`
	Actions        []string `json:"actions"`
}

type TableConflict struct {
	Table    int32    `json:"table"`
	Winner   string   `json:"winner"`
	Shadowed []string `json:"shadowed"`
}

type TableBoard struct {
	Tables      []*TableStatus   `json:"tables"`
	Conflicts   []*TableConflict `json:"conflicts,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
}

type OrderServiceServer interface {
	ListActive(context.Context, *emptypb.Empty) (*ListOrdersResponse, error)
	GetOrder(context.Context, *OrderIDRequest) (*Order, error)
	Advance(context.Context, *OrderIDRequest) (*Order, error)
	UpdateStatus(context.Context, *UpdateStatusRequest) (*Order, error)
	Cancel(context.Context, *OrderIDRequest) (*Order, error)
	Settle(context.Context, *OrderIDRequest) (*Order, error)
	UpdateItemQuantity(context.Context, *UpdateItemQuantityRequest) (*Order, error)
	ListTables(context.Context, *emptypb.Empty) (*TableBoard, error)
	WatchOrders(*emptypb.Empty, grpc.ServerStreamingServer[ListOrdersResponse]) error
	WatchTables(*emptypb.Empty, grpc.ServerStreamingServer[TableBoard]) error
}

type UnimplementedOrderServiceServer struct{}

func (UnimplementedOrderServiceServer) ListActive(context.Context, *emptypb.Empty) (*ListOrdersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListActive not implemented")
}
func (UnimplementedOrderServiceServer) GetOrder(context.Context, *OrderIDRequest) (*Order, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOrder not implemented")
}
func (UnimplementedOrderServiceServer) Advance(context.Context, *OrderIDRequest) (*Order, error) {
	return nil, status.Error(codes.Unimplemented, "method Advance not implemented")
}
func (UnimplementedOrderServiceServer) UpdateStatus(context.Context, *UpdateStatusRequest) (*Order, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateStatus not implemented")
}
func (UnimplementedOrderServiceServer) Cancel(context.Context, *OrderIDRequest) (*Order, error) {
	return nil, status.Error(codes.Unimplemented, "method Cancel not implemented")
}
func (UnimplementedOrderServiceServer) Settle(context.Context, *OrderIDRequest) (*Order, error) {
	return nil, status.Error(codes.Unimplemented, "method Settle not implemented")
}
func (UnimplementedOrderServiceServer) UpdateItemQuantity(context.Context, *UpdateItemQuantityRequest) (*Order, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateItemQuantity not implemented")
}
func (UnimplementedOrderServiceServer) ListTables(context.Context, *emptypb.Empty) (*TableBoard, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTables not implemented")
}
func (UnimplementedOrderServiceServer) WatchOrders(*emptypb.Empty, grpc.ServerStreamingServer[ListOrdersResponse]) error {
	return status.Error(codes.Unimplemented, "method WatchOrders not implemented")
}
func (UnimplementedOrderServiceServer) WatchTables(*emptypb.Empty, grpc.ServerStreamingServer[TableBoard]) error {
	return status.Error(codes.Unimplemented, "method WatchTables not implemented")
}

func _OrderService_WatchOrders_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(OrderServiceServer).WatchOrders(m, &grpc.GenericServerStream[emptypb.Empty, ListOrdersResponse]{ServerStream: stream})
}

func _OrderService_WatchTables_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(OrderServiceServer).WatchTables(m, &grpc.GenericServerStream[emptypb.Empty, TableBoard]{ServerStream: stream})
}

var OrderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "order.v1.OrderService",
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListActive", Handler: unaryHandler(OrderService_ListActive_FullMethodName, OrderServiceServer.ListActive)},
		{MethodName: "GetOrder", Handler: unaryHandler(OrderService_GetOrder_FullMethodName, OrderServiceServer.GetOrder)},
		{MethodName: "Advance", Handler: unaryHandler(OrderService_Advance_FullMethodName, OrderServiceServer.Advance)},
		{MethodName: "UpdateStatus", Handler: unaryHandler(OrderService_UpdateStatus_FullMethodName, OrderServiceServer.UpdateStatus)},
		{MethodName: "Cancel", Handler: unaryHandler(OrderService_Cancel_FullMethodName, OrderServiceServer.Cancel)},
		{MethodName: "Settle", Handler: unaryHandler(OrderService_Settle_FullMethodName, OrderServiceServer.Settle)},
		{MethodName: "UpdateItemQuantity", Handler: unaryHandler(OrderService_UpdateItemQuantity_FullMethodName, OrderServiceServer.UpdateItemQuantity)},
		{MethodName: "ListTables", Handler: unaryHandler(OrderService_ListTables_FullMethodName, OrderServiceServer.ListTables)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchOrders",
			Handler:       _OrderService_WatchOrders_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "WatchTables",
			Handler:       _OrderService_WatchTables_Handler,
			ServerStreams: true,
		},
	},
}

func RegisterOrderServiceServer(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&OrderService_ServiceDesc, srv)
}

type OrderServiceClient interface {
	ListActive(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListOrdersResponse, error)
	GetOrder(ctx context.Context, in *OrderIDRequest, opts ...grpc.CallOption) (*Order, error)
	Advance(ctx context.Context, in *OrderIDRequest, opts ...grpc.CallOption) (*Order, error)
	UpdateStatus(ctx context.Context, in *UpdateStatusRequest, opts ...grpc.CallOption) (*Order, error)
	Cancel(ctx context.Context, in *OrderIDRequest, opts ...grpc.CallOption) (*Order, error)
	Settle(ctx context.Context, in *OrderIDRequest, opts ...grpc.CallOption) (*Order, error)
	UpdateItemQuantity(ctx context.Context, in *UpdateItemQuantityRequest, opts ...grpc.CallOption) (*Order, error)
	ListTables(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*TableBoard, error)
	WatchOrders(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ListOrdersResponse], error)
	WatchTables(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[TableBoard], error)
}

type orderServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderServiceClient(cc grpc.ClientConnInterface) OrderServiceClient {
	return &orderServiceClient{cc}
}

func (c *orderServiceClient) ListActive(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	return invoke[ListOrdersResponse](ctx, c.cc, OrderService_ListActive_FullMethodName, in, opts)
}

func (c *orderServiceClient) GetOrder(ctx context.Context, in *OrderIDRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, OrderService_GetOrder_FullMethodName, in, opts)
}

func (c *orderServiceClient) Advance(ctx context.Context, in *OrderIDRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, OrderService_Advance_FullMethodName, in, opts)
}

func (c *orderServiceClient) UpdateStatus(ctx context.Context, in *UpdateStatusRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, OrderService_UpdateStatus_FullMethodName, in, opts)
}

func (c *orderServiceClient) Cancel(ctx context.Context, in *OrderIDRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, OrderService_Cancel_FullMethodName, in, opts)
}

func (c *orderServiceClient) Settle(ctx context.Context, in *OrderIDRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, OrderService_Settle_FullMethodName, in, opts)
}

func (c *orderServiceClient) UpdateItemQuantity(ctx context.Context, in *UpdateItemQuantityRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, OrderService_UpdateItemQuantity_FullMethodName, in, opts)
}

func (c *orderServiceClient) ListTables(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*TableBoard, error) {
	return invoke[TableBoard](ctx, c.cc, OrderService_ListTables_FullMethodName, in, opts)
}

func (c *orderServiceClient) WatchOrders(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ListOrdersResponse], error) {
	return serverStream[emptypb.Empty, ListOrdersResponse](ctx, c.cc, &OrderService_ServiceDesc.Streams[0], OrderService_WatchOrders_FullMethodName, in, opts)
}

func (c *orderServiceClient) WatchTables(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[TableBoard], error) {
	return serverStream[emptypb.Empty, TableBoard](ctx, c.cc, &OrderService_ServiceDesc.Streams[1], OrderService_WatchTables_FullMethodName, in, opts)
}
