package soap

import (
	"encoding/xml"
	"net/http"
	"storefront/domain"

	"github.com/shopspring/decimal"
)

const (
	EnvelopeNS = "http://www.w3.org/2003/05/soap-envelope"
	RPCNS      = "http://www.w3.org/2003/05/soap-rpc"
	ServiceNS  = "urn:storefront:products"

	ContentType = "application/soap+xml; charset=utf-8"
)

// Fault codes and subcodes carried by a SOAP 1.2 fault.
const (
	CodeSender   = "soap:Sender"
	CodeReceiver = "soap:Receiver"

	SubcodeBadArguments        = "rpc:BadArguments"
	SubcodeNotFound            = "rpc:NotFound"
	SubcodeProcessingError     = "rpc:ProcessingError"
	SubcodeProcedureNotPresent = "rpc:ProcedureNotPresent"
)

type requestEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Inner []byte `xml:",innerxml"`
	} `xml:"Body"`
}

type responseEnvelope struct {
	XMLName xml.Name     `xml:"soap:Envelope"`
	SoapNS  string       `xml:"xmlns:soap,attr"`
	RPCNS   string       `xml:"xmlns:rpc,attr,omitempty"`
	Body    responseBody `xml:"soap:Body"`
}

type responseBody struct {
	Content any
}

type Fault struct {
	XMLName xml.Name `xml:"soap:Fault"`
	Code    struct {
		Value   string `xml:"soap:Value"`
		Subcode struct {
			Value string `xml:"soap:Value"`
		} `xml:"soap:Subcode"`
	} `xml:"soap:Code"`
	Reason struct {
		Text string `xml:"soap:Text"`
	} `xml:"soap:Reason"`

	status int
}

func newFault(code, subcode, reason string, status int) *Fault {
	f := &Fault{status: status}
	f.Code.Value = code
	f.Code.Subcode.Value = subcode
	f.Reason.Text = reason
	return f
}

func (f *Fault) Error() string {
	return f.Code.Subcode.Value + ": " + f.Reason.Text
}

// Status is the HTTP status the fault is sent with.
func (f *Fault) Status() int {
	if f.status == 0 {
		return http.StatusInternalServerError
	}
	return f.status
}

type CreateProductRequest struct {
	Name        string          `xml:"name"`
	About       string          `xml:"about"`
	Price       decimal.Decimal `xml:"price"`
	CategoryIDs []int64         `xml:"categoryIds>id"`
}

// GetProductRequest lists every product when ID is absent.
type GetProductRequest struct {
	ID *int64 `xml:"id"`
}

type DeleteProductRequest struct {
	ID int64 `xml:"id"`
}

type PatchProductRequest struct {
	ID    int64            `xml:"id"`
	Name  *string          `xml:"name"`
	About *string          `xml:"about"`
	Price *decimal.Decimal `xml:"price"`
}

type CreateProductResponse struct {
	XMLName xml.Name       `xml:"CreateProductResponse"`
	NS      string         `xml:"xmlns,attr"`
	Product domain.Product `xml:"product"`
}

type GetProductResponse struct {
	XMLName  xml.Name         `xml:"GetProductResponse"`
	NS       string           `xml:"xmlns,attr"`
	Products []domain.Product `xml:"product"`
}

type DeleteProductResponse struct {
	XMLName xml.Name       `xml:"DeleteProductResponse"`
	NS      string         `xml:"xmlns,attr"`
	Product domain.Product `xml:"product"`
}

type PatchProductResponse struct {
	XMLName xml.Name       `xml:"PatchProductResponse"`
	NS      string         `xml:"xmlns,attr"`
	Product domain.Product `xml:"product"`
}
