// Package report formats the human readable check report sent to Telegram.
//
// Every function returns a fragment; the checker concatenates them in order.
// Dynamic values are escaped for Telegram's HTML parse mode.
package report

import (
	"fmt"
	"strconv"
	"time"

	"stockwatch/internal/stock"
)

const TimeLayout = "2006-01-02 15:04:05"

// Header opens every report.
func Header(at time.Time) string {
	return fmt.Sprintf("🕒 Check initiated at %s\n", at.Format(TimeLayout))
}

// Failure describes a failed fetch.
func Failure(res stock.Result) string {
	return fmt.Sprintf(
		"\n❌ %s\n"+
			"⏱ Response Time: %s\n"+
			"📡 HTTP Status: %s\n"+
			"📛 Error: %s",
		B("API Check Failed"),
		ResponseTime(res.Elapsed),
		HTTPStatus(res.HTTPStatus),
		Esc(errString(res.Err)),
	)
}

// Success describes a successful fetch. res.Record must be set.
func Success(res stock.Result) string {
	rec := stock.Record{}
	if res.Record != nil {
		rec = *res.Record
	}
	return fmt.Sprintf(
		"\n✅ %s\n"+
			"⏱ Response Time: %s\n"+
			"📡 HTTP Status: %s\n"+
			"\n🏪 Store: %s\n"+
			"📦 Current Status: %s (Code: %s)",
		B("API Check Successful"),
		ResponseTime(res.Elapsed),
		HTTPStatus(res.HTTPStatus),
		Esc(rec.StoreTitle),
		Esc(rec.StockText),
		Esc(rec.Status.String()),
	)
}

func Changed(changed bool) string {
	if changed {
		return "\n🔄 Status Changed: Yes ✅"
	}
	return "\n🔄 Status Changed: No ⏸️"
}

func FirstRun() string {
	return "\n🆕 First run - no previous status to compare"
}

func HistoryError(err error) string {
	return fmt.Sprintf("\n⚠️ History Error: %s", Esc(errString(err)))
}

func SaveError(err error) string {
	return fmt.Sprintf("\n⚠️ Save Error: Failed to update status history: %s", Esc(errString(err)))
}

// ResponseTime renders seconds with two decimals, or N/A when unmeasured.
func ResponseTime(d time.Duration) string {
	if d <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

func HTTPStatus(code int) string {
	if code == 0 {
		return "N/A"
	}
	return strconv.Itoa(code)
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return TruncRunes(err.Error(), MaxErrorRunes)
}
