package filters

import (
	"errors"
	"math"
	"strings"
)

const (
	AscSort  = "ASC"
	DescSort = "DESC"
)

type Filters struct {
	Page         int    `schema:"page" validate:"gte=1,lte=10000000"`
	PageSize     int    `schema:"page_size" validate:"gte=1,lte=100"`
	Sort         string `schema:"sort" validate:"omitempty,sortbymoviefield"`
	SortSafelist []string `schema:"-"`
}

type Metadata struct {
	CurrentPage  int `json:"current_page,omitempty"`
	PageSize     int `json:"page_size,omitempty"`
	FirstPage    int `json:"first_page,omitempty"`
	LastPage     int `json:"last_page,omitempty"`
	TotalRecords int `json:"total_records"`
}

func (f *Filters) SortColumn() string {
	s := strings.TrimPrefix(f.Sort, "-")
	for _, safeValue := range f.SortSafelist {
		if strings.EqualFold(s, safeValue) {
			return safeValue
		}
	}
	panic(errors.New("Unknown sort column: " + f.Sort))
}

func (f *Filters) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return DescSort
	}
	return AscSort
}

func (f *Filters) Limit() int {
	return f.PageSize
}

func (f *Filters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Window returns the [start, end) bounds of the current page within a
// collection of total items.
func (f *Filters) Window(total int) (start, end int) {
	start = min(f.Offset(), total)
	end = min(start+f.Limit(), total)
	return start, end
}

func CalculateMetadata(totalRecords, page, pageSize int) Metadata {
	if totalRecords == 0 {
		return Metadata{}
	}
	return Metadata{
		CurrentPage:  page,
		PageSize:     pageSize,
		FirstPage:    1,
		LastPage:     int(math.Ceil(float64(totalRecords) / float64(pageSize))),
		TotalRecords: totalRecords,
	}
}
