package service

import (
	"time"

	"go-pos-ledger/internal/repository"
)

type ReportService interface {
	GetDailySales(days int) ([]repository.DailySalesData, error)
	GetSummaryStats() (*repository.SummaryStats, error)
}

type reportService struct {
	saleRepo repository.SaleRepository
}

func NewReportService(saleRepo repository.SaleRepository) ReportService {
	return &reportService{saleRepo: saleRepo}
}

func (s *reportService) GetDailySales(days int) ([]repository.DailySalesData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.saleRepo.GetDailySales(startDate, endDate)
}

func (s *reportService) GetSummaryStats() (*repository.SummaryStats, error) {
	return s.saleRepo.GetSummaryStats()
}
