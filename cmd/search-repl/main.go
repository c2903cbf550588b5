// search-repl is an interactive terminal search session against the live
// NCES endpoints. It drives the same debounced controller the test suite
// exercises, with an in-memory history store.
//
// Commands:
//
//	name <text>    set the district name filter
//	city <text>    set the city filter
//	state <XX>     set the state filter ("-" clears)
//	open <query>   apply a shared query string, e.g. name=Lincoln&state=TX
//	history        print the recent search terms
//	quit
package main

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/SchoolScout/SS-Backend/internal/directory"
	"github.com/SchoolScout/SS-Backend/internal/favorites"
	"github.com/SchoolScout/SS-Backend/internal/search"
	"github.com/SchoolScout/SS-Backend/internal/storage"
)

func main() {
	history := favorites.NewSearchHistoryStore(storage.NewMemKV())

	controller := search.NewController(directory.NewClient(), history, search.ControllerConfig{
		OnUpdate: printUpdate,
	})
	defer controller.Close()

	fmt.Println("District search REPL. Type 'name <text>' to search, 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
		case "name":
			controller.SetName(arg)
		case "city":
			controller.SetCity(arg)
		case "state":
			if arg == "-" {
				arg = ""
			}
			controller.SetState(arg)
		case "open":
			values, err := url.ParseQuery(arg)
			if err != nil {
				fmt.Println("bad query string:", err)
				continue
			}
			if err := controller.ApplyQuery(values); err != nil {
				fmt.Println("bad query string:", err)
			}
		case "history":
			for i, term := range history.Terms() {
				fmt.Printf("  %d. %s\n", i+1, term)
			}
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

func printUpdate(u search.Update) {
	switch u.State {
	case search.StateDebouncing:
		// quiet while typing
	case search.StateQuerying:
		fmt.Printf("\n... querying ?%s\n", u.Query)
	case search.StateIdleEmpty:
		if u.Err != nil {
			fmt.Printf("\nsearch failed: %v\n", u.Err)
			return
		}
		fmt.Printf("\nno results ?%s\n", u.Query)
	case search.StateIdleResults:
		fmt.Printf("\n%d districts ?%s\n", len(u.Results), u.Query)
		for i, d := range u.Results {
			if i == 10 {
				fmt.Printf("  ... and %d more\n", len(u.Results)-10)
				break
			}
			fmt.Printf("  %-10s %s (%s, %s)\n", d.LEAID, d.Name, d.City, d.State)
		}
	}
}
