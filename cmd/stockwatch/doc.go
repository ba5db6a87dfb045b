// Command stockwatch checks the stock status of one product at one store,
// reports the result to Telegram and remembers the last status seen.
//
// Without a subcommand it performs a single check cycle and exits:
//
//	stockwatch                      # one cycle with built-in defaults
//	stockwatch -c config.yaml       # one cycle with a config file
//	stockwatch watch                # repeat on watch.schedule
//	stockwatch show                 # print the stored status
package main
