package utils

import "gorm.io/gorm"

const defaultPageSize = 10

// Paginate 分页查询，query 需要已经设置好 Model 和过滤条件
func Paginate(query *gorm.DB, page int, out interface{}) (int64, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	err := query.
		Offset((page - 1) * defaultPageSize).
		Limit(defaultPageSize).
		Find(out).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
