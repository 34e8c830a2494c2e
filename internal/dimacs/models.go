package dimacs

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseModels reads a ".cnf.models" file: one model per line, each a
// space-separated list of signed 1-based literals (sign gives the variable's
// truth value, 0 terminates the line). Returns one []bool per line, indexed
// by the 0-based variable id.
func ParseModels(filename string) ([][]bool, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var models [][]bool
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		model := make([]bool, 0, len(fields))
		for _, f := range fields {
			l, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("error parsing literal %q: %w", f, err)
			}
			if l == 0 {
				continue
			}
			model = append(model, l > 0)
		}
		models = append(models, model)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return models, nil
}
