package services

// Paged คือ envelope แบ่งหน้าที่ตอบให้ FE — page เริ่มนับจาก 0
type Paged[T any] struct {
	Content      []T   `json:"content"`
	CurrentPage  int   `json:"currentPage"`
	PageSize     int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages   int   `json:"totalPages"`
	First        bool  `json:"first"`
	Last         bool  `json:"last"`
	HasNext      bool  `json:"hasNext"`
	HasPrevious  bool  `json:"hasPrevious"`
}

func NewPaged[T any](content []T, page, size int, total int64) Paged[T] {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	if content == nil {
		content = []T{}
	}
	return Paged[T]{
		Content:      content,
		CurrentPage:  page,
		PageSize:     size,
		TotalElements: total,
		TotalPages:   totalPages,
		First:        page == 0,
		Last:         page >= totalPages-1,
		HasNext:      page < totalPages-1,
		HasPrevious:  page > 0,
	}
}

// normalizePage กันค่าหลุดช่วงจาก query string
func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size < 1 || size > 100 {
		size = 10
	}
	return page, size
}
