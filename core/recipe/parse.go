package recipe

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"recipe-planner/internal/errors"
)

// SplitItemCount splits "[COUNT ]NAME". When the first word is not an
// integer the count defaults to 1 and the whole token is the name, which is
// what lets names contain several words.
func SplitItemCount(token string) (string, int64) {
	token = strings.TrimSpace(token)
	words := strings.Fields(token)
	if len(words) == 0 {
		return "", 1
	}

	count, err := strconv.ParseInt(words[0], 10, 64)
	if err != nil {
		return token, 1
	}
	return strings.Join(words[1:], " "), count
}

// SplitCommas splits a list on commas and trims every element
func SplitCommas(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// ParseItemCount parses an ingredient or goal token. The count must be at
// least 1 and the name must not be empty.
func ParseItemCount(token string) (ItemCount, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ItemCount{}, errors.Format(token, "empty item in list")
	}
	if err := checkCountRange(token); err != nil {
		return ItemCount{}, err
	}

	name, count := SplitItemCount(token)
	if name == "" {
		return ItemCount{}, errors.Formatf("item %q has a count but no name", token)
	}
	if count < 1 {
		return ItemCount{}, errors.Formatf("item %q: count must be at least 1, got %d", name, count)
	}
	return ItemCount{Name: name, Count: count}, nil
}

// checkCountRange rejects a leading integer too large for int64 instead of
// silently folding it into the item name
func checkCountRange(token string) error {
	words := strings.Fields(token)
	if len(words) == 0 {
		return nil
	}
	_, err := strconv.ParseInt(words[0], 10, 64)
	var numErr *strconv.NumError
	if stderrors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
		return errors.Formatf("count %s is out of range", words[0])
	}
	return nil
}

// ParseRecipeLine parses "PRODUCT = ING, ING, ...". The product count is the
// yield per craft. Yields are not range-checked here.
func ParseRecipeLine(line string) (Recipe, error) {
	parts := strings.Split(line, "=")
	if len(parts) != 2 {
		return Recipe{}, errors.Format(line, fmt.Sprintf("expected exactly one '=' in recipe line, found %d", len(parts)-1))
	}

	productToken := strings.TrimSpace(parts[0])
	if productToken == "" {
		return Recipe{}, errors.Format(line, "recipe line has no product")
	}
	if err := checkCountRange(productToken); err != nil {
		return Recipe{}, err
	}
	product, yield := SplitItemCount(productToken)
	if product == "" {
		return Recipe{}, errors.Format(line, fmt.Sprintf("product %q has a count but no name", productToken))
	}

	var ingredients []ItemCount
	for _, token := range SplitCommas(parts[1]) {
		ing, err := ParseItemCount(token)
		if err != nil {
			return Recipe{}, err
		}
		ingredients = append(ingredients, ing)
	}

	return Recipe{
		Product:     product,
		Yield:       yield,
		Ingredients: ingredients,
	}, nil
}

// ParseGoalLine parses the comma separated goal list
func ParseGoalLine(line string) ([]ItemCount, error) {
	if strings.Contains(line, "=") {
		return nil, errors.Format(line, "goal line must not contain '='; the last line of the input is the goal")
	}

	var goal []ItemCount
	for _, token := range SplitCommas(line) {
		item, err := ParseItemCount(token)
		if err != nil {
			return nil, err
		}
		goal = append(goal, item)
	}
	return goal, nil
}

// ParseText parses a full recipe text. Blank lines and lines starting with
// '#' are ignored; the last remaining line is the goal.
func ParseText(text string) (Book, error) {
	type numbered struct {
		n    int
		text string
	}

	var lines []numbered
	for i, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, numbered{n: i + 1, text: trimmed})
	}

	if len(lines) == 0 {
		return Book{}, errors.Formatf("recipe text is empty; expected at least a goal line")
	}

	var book Book
	for _, line := range lines[:len(lines)-1] {
		r, err := ParseRecipeLine(line.text)
		if err != nil {
			return Book{}, atLine(err, line.n)
		}
		r.Line = line.n
		book.Recipes = append(book.Recipes, r)
	}

	last := lines[len(lines)-1]
	goal, err := ParseGoalLine(last.text)
	if err != nil {
		return Book{}, atLine(err, last.n)
	}
	book.Goal = goal

	return book, nil
}

// atLine prefixes a domain error with its source line
func atLine(err error, n int) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		e.Message = fmt.Sprintf("line %d: %s", n, e.Message)
		e.WithContext("line_number", n)
		return e
	}
	return fmt.Errorf("line %d: %w", n, err)
}
