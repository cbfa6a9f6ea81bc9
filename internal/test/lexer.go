package test

import (
	"fmt"
	"math/rand"
	"strings"
)

const validTokens = "let;x;y;_name;:;=;+;-;*;/;Integer;String;0;1;123;4294967295;\"this is a string\";\"\";\"this is a longer string containing a bunch of text: Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.\";\n;\n# comment line\n"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomProgram returns size well-typed let declarations.
func GetRandomProgram(size int) string {
	var lines []string
	for i := 0; i < size; i++ {
		switch rand.Intn(3) {
		case 0:
			lines = append(lines, fmt.Sprintf("let %s = %d", name(i), rand.Uint32()))
		case 1:
			lines = append(lines, fmt.Sprintf("let %s: Integer = %d + %d", name(i), rand.Intn(1000), rand.Intn(1000)))
		default:
			lines = append(lines, fmt.Sprintf("let %s: String = \"s%d\"", name(i), i))
		}
	}

	return strings.Join(lines, "\n")
}

// name spells i in letters since identifiers can't contain digits. The v
// prefix keeps it clear of keywords.
func name(i int) string {
	var b []byte
	for {
		b = append([]byte{byte('a' + i%26)}, b...)
		i /= 26
		if i == 0 {
			return "v" + string(b)
		}
	}
}
