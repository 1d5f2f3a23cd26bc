// Package soap exposes the product resource as a SOAP 1.2 document/literal
// service next to the JSON API.
package soap

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"storefront/business/product"
	"storefront/domain"
	"storefront/pkg/apperror"
	"storefront/pkg/logger"
	"storefront/pkg/optional"
	"text/template"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed wsdl/products.wsdl
var wsdlSource string

var wsdlTemplate = template.Must(template.New("wsdl").Parse(wsdlSource))

// maxEnvelopeBytes bounds the size of an accepted request envelope.
const maxEnvelopeBytes = 1 << 20

type ProductService interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (domain.Product, error)
	CreateProduct(ctx context.Context, in product.CreateProductInput) (domain.Product, error)
	PatchProduct(ctx context.Context, id int64, in product.PatchProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) (domain.Product, error)
}

type Handler struct {
	productService ProductService
	timeout        time.Duration
}

func NewHandler(productService ProductService) *Handler {
	return &Handler{
		productService: productService,
		timeout:        10 * time.Second,
	}
}

// WSDL serves the service description on GET ...?wsdl.
func (h *Handler) WSDL(c echo.Context) error {
	if _, ok := c.QueryParams()["wsdl"]; !ok {
		return echo.ErrNotFound
	}

	req := c.Request()
	scheme := c.Scheme()
	address := scheme + "://" + req.Host + req.URL.Path

	var buf bytes.Buffer
	if err := wsdlTemplate.Execute(&buf, struct{ Address string }{address}); err != nil {
		return apperror.Internal("failed to render wsdl", err)
	}

	return c.Blob(http.StatusOK, "text/xml; charset=utf-8", buf.Bytes())
}

// Serve dispatches one SOAP request envelope to the product service.
func (h *Handler) Serve(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxEnvelopeBytes))
	if err != nil {
		return h.fault(c, newFault(CodeSender, SubcodeBadArguments, "unreadable request body", http.StatusBadRequest))
	}

	result, err := h.dispatch(ctx, body)
	if err != nil {
		return h.fault(c, toFault(err))
	}

	return h.write(c, http.StatusOK, result)
}

func (h *Handler) dispatch(ctx context.Context, body []byte) (any, error) {
	var env requestEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, newFault(CodeSender, SubcodeBadArguments, "malformed envelope", http.StatusBadRequest)
	}

	dec := xml.NewDecoder(bytes.NewReader(env.Body.Inner))
	start, err := firstElement(dec)
	if err != nil {
		return nil, newFault(CodeSender, SubcodeBadArguments, "empty body", http.StatusBadRequest)
	}

	decode := func(v any) error {
		if err := dec.DecodeElement(v, &start); err != nil {
			return newFault(CodeSender, SubcodeBadArguments, "invalid "+start.Name.Local+" arguments", http.StatusBadRequest)
		}
		return nil
	}

	switch start.Name.Local {
	case "CreateProduct":
		var req CreateProductRequest
		if err := decode(&req); err != nil {
			return nil, err
		}
		created, err := h.productService.CreateProduct(ctx, product.CreateProductInput{
			Name:        req.Name,
			About:       req.About,
			Price:       req.Price,
			CategoryIDs: req.CategoryIDs,
		})
		if err != nil {
			return nil, err
		}
		return CreateProductResponse{NS: ServiceNS, Product: created}, nil

	case "GetProduct":
		var req GetProductRequest
		if err := decode(&req); err != nil {
			return nil, err
		}
		if req.ID != nil {
			found, err := h.productService.GetProductByID(ctx, *req.ID)
			if err != nil {
				return nil, err
			}
			return GetProductResponse{NS: ServiceNS, Products: []domain.Product{found}}, nil
		}
		products, err := h.productService.GetAllProducts(ctx)
		if err != nil {
			return nil, err
		}
		return GetProductResponse{NS: ServiceNS, Products: products}, nil

	case "DeleteProduct":
		var req DeleteProductRequest
		if err := decode(&req); err != nil {
			return nil, err
		}
		deleted, err := h.productService.DeleteProduct(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		return DeleteProductResponse{NS: ServiceNS, Product: deleted}, nil

	case "PatchProduct":
		var req PatchProductRequest
		if err := decode(&req); err != nil {
			return nil, err
		}
		var in product.PatchProductInput
		if req.Name != nil {
			in.Name = optional.Of(*req.Name)
		}
		if req.About != nil {
			in.About = optional.Of(*req.About)
		}
		if req.Price != nil {
			in.Price = optional.Of(*req.Price)
		}
		patched, err := h.productService.PatchProduct(ctx, req.ID, in)
		if err != nil {
			return nil, err
		}
		return PatchProductResponse{NS: ServiceNS, Product: patched}, nil

	default:
		return nil, newFault(CodeSender, SubcodeProcedureNotPresent, "unknown operation "+start.Name.Local, http.StatusBadRequest)
	}
}

func firstElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}

// toFault maps service errors onto SOAP faults.
func toFault(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}

	appErr := apperror.As(err)
	switch appErr.Kind {
	case apperror.KindValidation:
		return newFault(CodeSender, SubcodeBadArguments, appErr.Message, http.StatusBadRequest)
	case apperror.KindNotFound:
		return newFault(CodeSender, SubcodeNotFound, appErr.Message, http.StatusNotFound)
	default:
		logger.Error("soap request failed", err)
		return newFault(CodeReceiver, SubcodeProcessingError, "Processing Error", http.StatusInternalServerError)
	}
}

func (h *Handler) fault(c echo.Context, f *Fault) error {
	return h.write(c, f.Status(), f)
}

func (h *Handler) write(c echo.Context, status int, content any) error {
	out, err := xml.Marshal(responseEnvelope{
		SoapNS: EnvelopeNS,
		RPCNS:  RPCNS,
		Body:   responseBody{Content: content},
	})
	if err != nil {
		logger.Error("failed to encode soap response", err)
		return apperror.Internal("failed to encode soap response", err)
	}

	return c.Blob(status, ContentType, append([]byte(xml.Header), out...))
}
