// Package pagination страничный доступ к спискам бронирований
package pagination

import "errors"

// ErrInvalidParams возвращается при некорректных параметрах страницы
var ErrInvalidParams = errors.New("pagination: size <= 0 || from < 0")

// PageRequest дескриптор страницы: нулевой индекс страницы и её размер
// Порядок сортировки задает вызывающая сторона (репозиторий)
type PageRequest struct {
	Page int64
	Size int64
}

// MakePageRequest строит дескриптор страницы из пары (from, size)
//
// Если хотя бы один из параметров не задан, возвращает nil - пагинация
// не применяется и вызывающая сторона отдает полный упорядоченный список.
//
// Индекс страницы вычисляется целочисленным делением from / size: from
// трактуется как смещение, округлённое вниз до целой страницы, а не как
// точное поэлементное смещение. Например from=3, size=2 дает страницу 1
// (элементы 2-3), а не элементы 3-4.
func MakePageRequest(from, size *int64) (*PageRequest, error) {
	if from == nil || size == nil {
		return nil, nil
	}
	if *size <= 0 || *from < 0 {
		return nil, ErrInvalidParams
	}
	return &PageRequest{Page: *from / *size, Size: *size}, nil
}

// Offset возвращает смещение первого элемента страницы
func (p *PageRequest) Offset() int64 {
	return p.Page * p.Size
}

// Limit возвращает размер страницы
func (p *PageRequest) Limit() int64 {
	return p.Size
}
