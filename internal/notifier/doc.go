// Package notifier delivers check reports to a Telegram chat.
//
// Reports are small, high-signal HTML messages sent through the Bot API
// sendMessage call. Delivery is best effort: Notify logs failures and never
// returns them, so a broken chat never stops a check cycle. There is no
// retry; the next cycle sends a fresh report anyway.
package notifier
