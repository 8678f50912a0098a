package lang_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cjhanks/appconf/lang"
)

func ExampleParseString() {
	cfg, err := lang.ParseString(context.Background(), `
		define PORT 8080

		server {
			host = localhost
			port = PORT
			export define SCHEME https
		}

		url = SCHEME
	`)
	if err != nil {
		fmt.Println(err)

		return
	}

	server, _ := cfg.Section("server")
	port, _ := lang.Get[uint16](server, "port")
	host, _ := lang.Get[string](server, "host")
	scheme, _ := lang.Get[string](cfg, "url")

	fmt.Println(scheme, host, port)
	fmt.Println(cfg.AssertType("server.port", lang.KindIntegral))
	// Output:
	// https localhost 8080
	// true
}

func ExampleSection_Format() {
	cfg, _ := lang.ParseString(context.Background(), `b = 1.5; a { c = "x y" }`)

	_ = cfg.Format(context.Background(), os.Stdout, 2)
	// Output:
	// a {
	//   c = "x y";
	// }
	// b = 1.5;
}
