package utils

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// NormalizePage chỉ điền default khi client không gửi (0).
// Giá trị ngoài khoảng hợp lệ không bị clamp, request Validate() sẽ reject
func NormalizePage(page, limit int) (int, int) {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	return page, limit
}

// Offset tính offset từ page (1-based)
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// TotalPages = ceil(total / limit)
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
