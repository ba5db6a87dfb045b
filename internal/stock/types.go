package stock

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrStoreNotFound is wrapped by Result.Err when the response list has no
// entry for the configured store.
var ErrStoreNotFound = errors.New("store not found in response")

// NotFoundError names the missing store; errors.Is matches ErrStoreNotFound.
type NotFoundError struct {
	StoreCode string
}

func (e *NotFoundError) Error() string {
	return "Store " + e.StoreCode + " not found in response"
}

func (e *NotFoundError) Is(target error) bool { return target == ErrStoreNotFound }

// Code is a status/store code. The endpoint sends it either as a JSON
// string or a JSON number; it is always encoded back as a string.
type Code string

func (c *Code) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("code: %w", err)
	}
	*c = Code(n.String())
	return nil
}

func (c Code) String() string { return string(c) }

// Record is the stock status of one store. Its JSON tags are the persisted
// history format; changing them breaks existing history files.
type Record struct {
	Status     Code   `json:"status"`
	StockText  string `json:"stock_text"`
	StoreTitle string `json:"store_title"`
}

// Outcome tags a Result.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeNetworkError
	OutcomeHTTPError
	OutcomeParseError
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNetworkError:
		return "network_error"
	case OutcomeHTTPError:
		return "http_error"
	case OutcomeParseError:
		return "parse_error"
	case OutcomeNotFound:
		return "not_found"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the outcome of a single Check. Record is set only on success;
// Err only on failure. HTTPStatus is 0 when no response was received.
type Result struct {
	Outcome    Outcome
	Record     *Record
	Err        error
	HTTPStatus int
	Elapsed    time.Duration
}

func (r Result) OK() bool { return r.Outcome == OutcomeSuccess && r.Record != nil }

// response mirrors the CheckStoreStocks payload: {"d":{"Data":{"StatusList":[...]}}}.
type response struct {
	D *struct {
		Data *struct {
			StatusList *[]storeStatus `json:"StatusList"`
		} `json:"Data"`
	} `json:"d"`
}

type storeStatus struct {
	StoreCode  Code   `json:"StoreCode"`
	Status     Code   `json:"Status"`
	StockText  string `json:"StockText"`
	StoreTitle string `json:"StoreTitle"`
}
