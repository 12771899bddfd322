package utils

import (
	"time"

	"shopq_merchant_v1_202608/internal/model"
)

// DayStat 仪表盘图表的单日数据点
type DayStat struct {
	Name           string `json:"name"`
	TotalQueues    int    `json:"total_queues"`
	WaitingCount   int    `json:"waiting_count"`
	CompletedCount int    `json:"completed_count"`
	CanceledCount  int    `json:"canceled_count"`
}

var dayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// CalculateQueueInSevenDays 汇总本周（周日起）的排队统计，固定输出 7 个桶
// 某天没有数据就补零，保证图表横轴完整
func CalculateQueueInSevenDays(stats []model.QueueStat, now time.Time) []DayStat {
	weekStart := time.Date(now.Year(), now.Month(), now.Day()-int(now.Weekday()), 0, 0, 0, 0, now.Location())

	data := make([]DayStat, 0, 7)
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)

		point := DayStat{Name: dayNames[date.Weekday()]}
		// 同一天有多条时取最后记录的一条
		for _, s := range stats {
			if s.Timestamp == nil {
				continue
			}
			t := s.Timestamp.In(now.Location())
			if t.Year() == date.Year() && t.Month() == date.Month() && t.Day() == date.Day() {
				point.TotalQueues = s.TotalQueues
				point.WaitingCount = s.WaitingCount
				point.CompletedCount = s.CompletedCount
				point.CanceledCount = s.CanceledCount
			}
		}
		data = append(data, point)
	}

	return data
}
