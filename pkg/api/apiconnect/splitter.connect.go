// Package apiconnect wires the splitter services to connect handlers and
// clients. It follows the layout of protoc-gen-connect-go output but carries
// plain Go messages from package api over a JSON codec.
package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitter/pkg/api"
)

const (
	// ReceiptServiceName is the fully-qualified name of the ReceiptService service.
	ReceiptServiceName = "splitter.v1.ReceiptService"
	// SplitServiceName is the fully-qualified name of the SplitService service.
	SplitServiceName = "splitter.v1.SplitService"
)

const (
	ReceiptServiceCreateReceiptProcedure = "/splitter.v1.ReceiptService/CreateReceipt"
	ReceiptServiceUpdateReceiptProcedure = "/splitter.v1.ReceiptService/UpdateReceipt"
	ReceiptServiceGetReceiptProcedure    = "/splitter.v1.ReceiptService/GetReceipt"
	ReceiptServiceDeleteReceiptProcedure = "/splitter.v1.ReceiptService/DeleteReceipt"

	SplitServiceUpsertParticipantsProcedure = "/splitter.v1.SplitService/UpsertParticipants"
	SplitServiceListParticipantsProcedure   = "/splitter.v1.SplitService/ListParticipants"
	SplitServiceDeleteParticipantProcedure  = "/splitter.v1.SplitService/DeleteParticipant"
	SplitServiceShareBillProcedure          = "/splitter.v1.SplitService/ShareBill"
	SplitServiceGetBillShareProcedure       = "/splitter.v1.SplitService/GetBillShare"
	SplitServiceGetSplitReportProcedure     = "/splitter.v1.SplitService/GetSplitReport"
)

// ReceiptServiceClient is a client for the splitter.v1.ReceiptService service.
type ReceiptServiceClient interface {
	CreateReceipt(context.Context, *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.CreateReceiptResponse], error)
	UpdateReceipt(context.Context, *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error)
	GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error)
	DeleteReceipt(context.Context, *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error)
}

// NewReceiptServiceClient constructs a client for the
// splitter.v1.ReceiptService service. baseURL is the scheme and host of the
// server, e.g. http://localhost:8080.
func NewReceiptServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReceiptServiceClient {
	opts = append([]connect.ClientOption{WithJSONClient()}, opts...)
	return &receiptServiceClient{
		createReceipt: connect.NewClient[api.CreateReceiptRequest, api.CreateReceiptResponse](
			httpClient, baseURL+ReceiptServiceCreateReceiptProcedure, opts...),
		updateReceipt: connect.NewClient[api.UpdateReceiptRequest, api.UpdateReceiptResponse](
			httpClient, baseURL+ReceiptServiceUpdateReceiptProcedure, opts...),
		getReceipt: connect.NewClient[api.GetReceiptRequest, api.GetReceiptResponse](
			httpClient, baseURL+ReceiptServiceGetReceiptProcedure, opts...),
		deleteReceipt: connect.NewClient[api.DeleteReceiptRequest, api.DeleteReceiptResponse](
			httpClient, baseURL+ReceiptServiceDeleteReceiptProcedure, opts...),
	}
}

type receiptServiceClient struct {
	createReceipt *connect.Client[api.CreateReceiptRequest, api.CreateReceiptResponse]
	updateReceipt *connect.Client[api.UpdateReceiptRequest, api.UpdateReceiptResponse]
	getReceipt    *connect.Client[api.GetReceiptRequest, api.GetReceiptResponse]
	deleteReceipt *connect.Client[api.DeleteReceiptRequest, api.DeleteReceiptResponse]
}

func (c *receiptServiceClient) CreateReceipt(ctx context.Context, req *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.CreateReceiptResponse], error) {
	return c.createReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) UpdateReceipt(ctx context.Context, req *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error) {
	return c.updateReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	return c.getReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) DeleteReceipt(ctx context.Context, req *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error) {
	return c.deleteReceipt.CallUnary(ctx, req)
}

// ReceiptServiceHandler is an implementation of the splitter.v1.ReceiptService service.
type ReceiptServiceHandler interface {
	CreateReceipt(context.Context, *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.CreateReceiptResponse], error)
	UpdateReceipt(context.Context, *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error)
	GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error)
	DeleteReceipt(context.Context, *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error)
}

// NewReceiptServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewReceiptServiceHandler(svc ReceiptServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	createReceipt := connect.NewUnaryHandler(ReceiptServiceCreateReceiptProcedure, svc.CreateReceipt, opts...)
	updateReceipt := connect.NewUnaryHandler(ReceiptServiceUpdateReceiptProcedure, svc.UpdateReceipt, opts...)
	getReceipt := connect.NewUnaryHandler(ReceiptServiceGetReceiptProcedure, svc.GetReceipt, opts...)
	deleteReceipt := connect.NewUnaryHandler(ReceiptServiceDeleteReceiptProcedure, svc.DeleteReceipt, opts...)
	return "/" + ReceiptServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ReceiptServiceCreateReceiptProcedure:
			createReceipt.ServeHTTP(w, r)
		case ReceiptServiceUpdateReceiptProcedure:
			updateReceipt.ServeHTTP(w, r)
		case ReceiptServiceGetReceiptProcedure:
			getReceipt.ServeHTTP(w, r)
		case ReceiptServiceDeleteReceiptProcedure:
			deleteReceipt.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedReceiptServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedReceiptServiceHandler struct{}

func (UnimplementedReceiptServiceHandler) CreateReceipt(context.Context, *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.CreateReceiptResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitter.v1.ReceiptService.CreateReceipt is not implemented"))
}

func (UnimplementedReceiptServiceHandler) UpdateReceipt(context.Context, *connect.Request[api.UpdateReceiptRequest]) (*connect.Response[api.UpdateReceiptResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitter.v1.ReceiptService.UpdateReceipt is not implemented"))
}

func (UnimplementedReceiptServiceHandler) GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitter.v1.ReceiptService.GetReceipt is not implemented"))
}

func (UnimplementedReceiptServiceHandler) DeleteReceipt(context.Context, *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitter.v1.ReceiptService.DeleteReceipt is not implemented"))
}

// SplitServiceClient is a client for the splitter.v1.SplitService service.
type SplitServiceClient interface {
	UpsertParticipants(context.Context, *connect.Request[api.UpsertParticipantsRequest]) (*connect.Response[api.UpsertParticipantsResponse], error)
	ListParticipants(context.Context, *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error)
	DeleteParticipant(context.Context, *connect.Request[api.DeleteParticipantRequest]) (*connect.Response[api.DeleteParticipantResponse], error)
	ShareBill(context.Context, *connect.Request[api.ShareBillRequest]) (*connect.Response[api.ShareBillResponse], error)
	GetBillShare(context.Context, *connect.Request[api.GetBillShareRequest]) (*connect.Response[api.GetBillShareResponse], error)
	GetSplitReport(context.Context, *connect.Request[api.GetSplitReportRequest]) (*connect.Response[api.GetSplitReportResponse], error)
}

// NewSplitServiceClient constructs a client for the splitter.v1.SplitService service.
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SplitServiceClient {
	opts = append([]connect.ClientOption{WithJSONClient()}, opts...)
	return &splitServiceClient{
		upsertParticipants: connect.NewClient[api.UpsertParticipantsRequest, api.UpsertParticipantsResponse](
			httpClient, baseURL+SplitServiceUpsertParticipantsProcedure, opts...),
		listParticipants: connect.NewClient[api.ListParticipantsRequest, api.ListParticipantsResponse](
			httpClient, baseURL+SplitServiceListParticipantsProcedure, opts...),
		deleteParticipant: connect.NewClient[api.DeleteParticipantRequest, api.DeleteParticipantResponse](
			httpClient, baseURL+SplitServiceDeleteParticipantProcedure, opts...),
		shareBill: connect.NewClient[api.ShareBillRequest, api.ShareBillResponse](
			httpClient, baseURL+SplitServiceShareBillProcedure, opts...),
		getBillShare: connect.NewClient[api.GetBillShareRequest, api.GetBillShareResponse](
			httpClient, baseURL+SplitServiceGetBillShareProcedure, opts...),
		getSplitReport: connect.NewClient[api.GetSplitReportRequest, api.GetSplitReportResponse](
			httpClient, baseURL+SplitServiceGetSplitReportProcedure, opts...),
	}
}

type splitServiceClient struct {
	upsertParticipants *connect.Client[api.UpsertParticipantsRequest, api.UpsertParticipantsResponse]
	listParticipants   *connect.Client[api.ListParticipantsRequest, api.ListParticipantsResponse]
	deleteParticipant  *connect.Client[api.DeleteParticipantRequest, api.DeleteParticipantResponse]
	shareBill          *connect.Client[api.ShareBillRequest, api.ShareBillResponse]
	getBillShare       *connect.Client[api.GetBillShareRequest, api.GetBillShareResponse]
	getSplitReport     *connect.Client[api.GetSplitReportRequest, api.GetSplitReportResponse]
}

func (c *splitServiceClient) UpsertParticipants(ctx context.Context, req *connect.Request[api.UpsertParticipantsRequest]) (*connect.Response[api.UpsertParticipantsResponse], error) {
	return c.upsertParticipants.CallUnary(ctx, req)
}

func (c *splitServiceClient) ListParticipants(ctx context.Context, req *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error) {
	return c.listParticipants.CallUnary(ctx, req)
}

func (c *splitServiceClient) DeleteParticipant(ctx context.Context, req *connect.Request[api.DeleteParticipantRequest]) (*connect.Response[api.DeleteParticipantResponse], error) {
	return c.deleteParticipant.CallUnary(ctx, req)
}

func (c *splitServiceClient) ShareBill(ctx context.Context, req *connect.Request[api.ShareBillRequest]) (*connect.Response[api.ShareBillResponse], error) {
	return c.shareBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) GetBillShare(ctx context.Context, req *connect.Request[api.GetBillShareRequest]) (*connect.Response[api.GetBillShareResponse], error) {
	return c.getBillShare.CallUnary(ctx, req)
}

func (c *splitServiceClient) GetSplitReport(ctx context.Context, req *connect.Request[api.GetSplitReportRequest]) (*connect.Response[api.GetSplitReportResponse], error) {
	return c.getSplitReport.CallUnary(ctx, req)
}

// SplitServiceHandler is an implementation of the splitter.v1.SplitService service.
type SplitServiceHandler interface {
	UpsertParticipants(context.Context, *connect.Request[api.UpsertParticipantsRequest]) (*connect.Response[api.UpsertParticipantsResponse], error)
	ListParticipants(context.Context, *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error)
	DeleteParticipant(context.Context, *connect.Request[api.DeleteParticipantRequest]) (*connect.Response[api.DeleteParticipantResponse], error)
	ShareBill(context.Context, *connect.Request[api.ShareBillRequest]) (*connect.Response[api.ShareBillResponse], error)
	GetBillShare(context.Context, *connect.Request[api.GetBillShareRequest]) (*connect.Response[api.GetBillShareResponse], error)
	GetSplitReport(context.Context, *connect.Request[api.GetSplitReportRequest]) (*connect.Response[api.GetSplitReportResponse], error)
}

// NewSplitServiceHandler builds an HTTP handler from the service implementation.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	upsertParticipants := connect.NewUnaryHandler(SplitServiceUpsertParticipantsProcedure, svc.UpsertParticipants, opts...)
	listParticipants := connect.NewUnaryHandler(SplitServiceListParticipantsProcedure, svc.ListParticipants, opts...)
	deleteParticipant := connect.NewUnaryHandler(SplitServiceDeleteParticipantProcedure, svc.DeleteParticipant, opts...)
	shareBill := connect.NewUnaryHandler(SplitServiceShareBillProcedure, svc.ShareBill, opts...)
	getBillShare := connect.NewUnaryHandler(SplitServiceGetBillShareProcedure, svc.GetBillShare, opts...)
	getSplitReport := connect.NewUnaryHandler(SplitServiceGetSplitReportProcedure, svc.GetSplitReport, opts...)
	return "/" + SplitServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SplitServiceUpsertParticipantsProcedure:
			upsertParticipants.ServeHTTP(w, r)
		case SplitServiceListParticipantsProcedure:
			listParticipants.ServeHTTP(w, r)
		case SplitServiceDeleteParticipantProcedure:
			deleteParticipant.ServeHTTP(w, r)
		case SplitServiceShareBillProcedure:
			shareBill.ServeHTTP(w, r)
		case SplitServiceGetBillShareProcedure:
			getBillShare.ServeHTTP(w, r)
		case SplitServiceGetSplitReportProcedure:
			getSplitReport.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedSplitServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSplitServiceHandler struct{}

func (UnimplementedSplitServiceHandler) UpsertParticipants(context.Context, *connect.Request[api.UpsertParticipantsRequest]) (*connect.Response[api.UpsertParticipantsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitter.v1.SplitService.UpsertParticipants is not implemented"))
}

func (UnimplementedSplitServiceHandler) ListParticipants(context.Context, *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitter.v1.SplitService.ListParticipants is not implemented"))
}

func (UnimplementedSplitServiceHandler) DeleteParticipant(context.Context, *connect.Request[api.DeleteParticipantRequest]) (*connect.Response[api.DeleteParticipantResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitter.v1.SplitService.DeleteParticipant is not implemented"))
}

func (UnimplementedSplitServiceHandler) ShareBill(context.Context, *connect.Request[api.ShareBillRequest]) (*connect.Response[api.ShareBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitter.v1.SplitService.ShareBill is not implemented"))
}

func (UnimplementedSplitServiceHandler) GetBillShare(context.Context, *connect.Request[api.GetBillShareRequest]) (*connect.Response[api.GetBillShareResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitter.v1.SplitService.GetBillShare is not implemented"))
}

func (UnimplementedSplitServiceHandler) GetSplitReport(context.Context, *connect.Request[api.GetSplitReportRequest]) (*connect.Response[api.GetSplitReportResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitter.v1.SplitService.GetSplitReport is not implemented"))
}
