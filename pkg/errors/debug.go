package errors

import (
	"errors"
	"fmt"
	"net/url"
)

// httpStatusCarrier is implemented by upstream status errors without this
// package importing them.
type httpStatusCarrier interface {
	HTTPStatus() int
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus int    `json:"upstream_status,omitempty"`
	TransportOp    string `json:"transport_op,omitempty"`
	TransportURL   string `json:"transport_url,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var statusErr httpStatusCarrier
	if errors.As(err, &statusErr) {
		d.UpstreamStatus = statusErr.HTTPStatus()
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		d.TransportOp = urlErr.Op
		d.TransportURL = urlErr.URL
	}

	return d
}
