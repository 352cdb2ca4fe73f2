package knapsack

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Format - раскладка входного файла с экземпляром.
type Format string

const (
	// FormatAuto выбирает раскладку по содержимому: '{' означает JSON,
	// третья строка из двух чисел - pairs, иначе arrays.
	// При n=2 раскладка arrays неотличима от pairs, для таких файлов формат задаётся явно.
	FormatAuto Format = "auto"
	// FormatPairs: n, Q, затем по строке "profit weight" на предмет; пустая строка завершает чтение.
	FormatPairs Format = "pairs"
	// FormatArrays: n, Q, строка всех прибылей, строка всех весов.
	FormatArrays Format = "arrays"
	// FormatJSON: {"capacity": Q, "items": [{"profit": p, "weight": w}, ...]}
	// или {"capacity": Q, "profits": [...], "weights": [...]}.
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatPairs, FormatArrays, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// LoadFile читает экземпляр из файла.
func LoadFile(path string, f Format) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	inst, err := Parse(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

// Load читает экземпляр из r.
func Load(r io.Reader, f Format) (*Instance, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, f)
}

// Parse разбирает экземпляр в заданном формате.
// В режиме FormatAuto JSON распознаётся по первому символу '{',
// а третья строка из двух чисел означает раскладку pairs,
// поэтому arrays с двумя предметами читается как pairs.
func Parse(data []byte, f Format) (*Instance, error) {
	if f == "" || f == FormatAuto {
		f = detectFormat(data)
	}
	switch f {
	case FormatJSON:
		return parseJSON(data)
	case FormatPairs, FormatArrays:
		return parseText(data, f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func detectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > 2 && len(strings.Fields(lines[2])) == 2 {
		return FormatPairs
	}
	return FormatArrays
}

func parseText(data []byte, f Format) (*Instance, error) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: header must contain n and capacity", ErrInvalidInstance)
	}
	n, err := atoiStrict(lines[0])
	if err != nil {
		return nil, fmt.Errorf("%w: line 1: %v", ErrInvalidInstance, err)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: n must be >= 0 (got %d)", ErrInvalidInstance, n)
	}
	capacity, err := atoiStrict(lines[1])
	if err != nil {
		return nil, fmt.Errorf("%w: line 2: %v", ErrInvalidInstance, err)
	}

	var profits, weights []int
	switch f {
	case FormatPairs:
		// Число предметов в заголовке не может превышать число строк файла.
		if n > len(lines)-2 {
			return nil, fmt.Errorf("%w: header says %d items, file has %d item lines",
				ErrInvalidInstance, n, len(lines)-2)
		}
		profits = make([]int, 0, n)
		weights = make([]int, 0, n)
		for ln, line := range lines[2:] {
			if strings.TrimSpace(line) == "" || len(profits) == n {
				break
			}
			fields := strings.Fields(line)
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: line %d: want \"profit weight\"", ErrInvalidInstance, ln+3)
			}
			p, err := atoiStrict(fields[0])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidInstance, ln+3, err)
			}
			w, err := atoiStrict(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidInstance, ln+3, err)
			}
			profits = append(profits, p)
			weights = append(weights, w)
		}
	case FormatArrays:
		if len(lines) < 4 {
			return nil, fmt.Errorf("%w: arrays layout needs profit and weight lines", ErrInvalidInstance)
		}
		if profits, err = atoiFields(lines[2]); err != nil {
			return nil, fmt.Errorf("%w: line 3: %v", ErrInvalidInstance, err)
		}
		if weights, err = atoiFields(lines[3]); err != nil {
			return nil, fmt.Errorf("%w: line 4: %v", ErrInvalidInstance, err)
		}
		if len(profits) != n {
			return nil, fmt.Errorf("%w: header says %d items, got %d profits", ErrInvalidInstance, n, len(profits))
		}
	}
	return NewInstance(capacity, profits, weights)
}

func parseJSON(data []byte) (*Instance, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidInstance)
	}
	doc := gjson.ParseBytes(data)

	capacity := doc.Get("capacity")
	if !capacity.Exists() {
		return nil, fmt.Errorf("%w: missing \"capacity\"", ErrInvalidInstance)
	}
	c, err := jsonInt(capacity, "capacity")
	if err != nil {
		return nil, err
	}

	var profits, weights []int
	if items := doc.Get("items"); items.Exists() {
		for i, it := range items.Array() {
			p, err := jsonInt(it.Get("profit"), fmt.Sprintf("items[%d].profit", i))
			if err != nil {
				return nil, err
			}
			w, err := jsonInt(it.Get("weight"), fmt.Sprintf("items[%d].weight", i))
			if err != nil {
				return nil, err
			}
			profits = append(profits, p)
			weights = append(weights, w)
		}
	} else {
		for i, v := range doc.Get("profits").Array() {
			p, err := jsonInt(v, fmt.Sprintf("profits[%d]", i))
			if err != nil {
				return nil, err
			}
			profits = append(profits, p)
		}
		for i, v := range doc.Get("weights").Array() {
			w, err := jsonInt(v, fmt.Sprintf("weights[%d]", i))
			if err != nil {
				return nil, err
			}
			weights = append(weights, w)
		}
	}
	return NewInstance(c, profits, weights)
}

func jsonInt(v gjson.Result, path string) (int, error) {
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidInstance, path)
	}
	if float64(v.Int()) != v.Float() {
		return 0, fmt.Errorf("%w: %s must be an integer (got %s)", ErrInvalidInstance, path, v.Raw)
	}
	return int(v.Int()), nil
}

func atoiStrict(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func atoiFields(line string) ([]int, error) {
	fields := strings.Fields(line)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
