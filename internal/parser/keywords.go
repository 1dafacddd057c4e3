package parser

// Keywords are lexed as identifiers; these sets drive error recovery.

var statementKeywords = map[string]bool{
	"let":     true,
	"return":  true,
	"if":      true,
	"while":   true,
	"repeat":  true,
	"do":      true,
	"try":     true,
	"foreach": true,
}

var itemKeywords = map[string]bool{
	"import":   true,
	"contract": true,
	"trait":    true,
	"message":  true,
	"struct":   true,
	"const":    true,
	"fun":      true,
	"get":      true,
	"init":     true,
	"receive":  true,
	"bounced":  true,
	"external": true,
	"native":   true,
}

var functionAttributes = map[string]bool{
	"inline":   true,
	"extends":  true,
	"mutates":  true,
	"virtual":  true,
	"override": true,
	"abstract": true,
}

var augmentedOperators = map[string]string{
	"+=":  "+",
	"-=":  "-",
	"*=":  "*",
	"/=":  "/",
	"%=":  "%",
	"|=":  "|",
	"&=":  "&",
	"^=":  "^",
	"<<=": "<<",
	">>=": ">>",
	"||=": "||",
	"&&=": "&&",
}
