package service

import "learning-log/internal/domain"

// Paginate selects page number of items, size items per page. Numbers below
// 1 clamp to 1 and numbers past the end clamp to the last page. An empty
// collection yields page 1 with no items and zero total pages.
func Paginate(items []string, number, size int) domain.PageView {
	if size <= 0 {
		size = 1
	}
	total := (len(items) + size - 1) / size

	if number > total {
		number = total
	}
	if number < 1 {
		number = 1
	}

	view := domain.PageView{
		Number:     number,
		Items:      []string{},
		TotalPages: total,
	}
	if total == 0 {
		return view
	}

	start := size * (number - 1)
	end := min(start+size, len(items))
	view.Items = append(view.Items, items[start:end]...)

	view.HasPrevious = number > 1
	view.HasNext = number < total
	if view.HasPrevious {
		view.PreviousPage = number - 1
	}
	if view.HasNext {
		view.NextPage = number + 1
	}
	return view
}
