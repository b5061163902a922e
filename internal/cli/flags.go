package cli

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// optionalInt は指定された場合だけ値を持つ整数フラグ
type optionalInt struct {
	target **int
}

func (o optionalInt) String() string {
	if o.target == nil || *o.target == nil {
		return ""
	}
	return strconv.Itoa(**o.target)
}

func (o optionalInt) Set(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("整数を指定してください: %q", s)
	}
	*o.target = &v
	return nil
}

// optionalFloat は指定された場合だけ値を持つ小数フラグ
type optionalFloat struct {
	target **float64
}

func (o optionalFloat) String() string {
	if o.target == nil || *o.target == nil {
		return ""
	}
	return strconv.FormatFloat(**o.target, 'f', -1, 64)
}

func (o optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("数値を指定してください: %q", s)
	}
	*o.target = &v
	return nil
}

// optionalBool は true|false の値を必須とする真偽値フラグ
// IsBoolFlag を実装しないため "--wb-auto true" の形で指定する
type optionalBool struct {
	target **bool
}

func (o optionalBool) String() string {
	if o.target == nil || *o.target == nil {
		return ""
	}
	return strconv.FormatBool(**o.target)
}

func (o optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("true または false を指定してください: %q", s)
	}
	*o.target = &v
	return nil
}

// parseInterspersed はフラグと位置引数が混在した引数を解析する
// 標準のflagは最初の位置引数で解析を止めるため、残りを繰り返し解析する
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}
