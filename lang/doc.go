// Package lang parses appconf configuration files into a tree of typed
// values.
//
// A file is a sequence of assignments. Values are quoted strings, integers,
// floats, bare words, or nested sections:
//
//	# service settings
//	name = "frontend"
//	port = 8080
//	ratio = 0.75
//
//	tls {
//		cert = /etc/ssl/frontend.pem
//		verify = 1
//	}
//
// # Macros
//
// Three directives drive a textual preprocessing layer that runs during the
// same single pass as parsing:
//
//	define NAME TEXT         bind NAME to TEXT in the current section
//	export NAME              copy NAME into the enclosing section
//	export define NAME TEXT  both at once
//	include PATH             parse PATH here, sharing the current scope
//
// A macro invoked at the start of a key or value is replaced by its text.
// Replacement text is parsed but never scanned for further macros. A
// definition is visible from the point it is made until its section closes:
//
//	define HOST "db.internal"
//	primary { host = HOST }
//	replica {
//		export define PORT 5433
//		host = HOST
//	}
//	port = PORT
//
// # Reading values
//
// [Load], [Parse] and [ParseString] return a [*Config], which embeds the root
// [*Section]. [Get] and [GetDefault] read immediate children with strict
// kinds; [Config.AssertType] checks a dotted path:
//
//	cfg, err := lang.Load(ctx, "app.conf")
//	if err != nil {
//		return err
//	}
//
//	port, err := lang.Get[uint16](cfg, "port")
//	tls, err := cfg.Section("tls")
//	ok := cfg.AssertType("tls.verify", lang.KindIntegral)
//
// [Initialize] and [Instance] keep one process-wide configuration for
// programs that want a global accessor.
package lang
