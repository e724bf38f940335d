package application

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/procurement/internal/procurement/domain"
)

const defaultCurrency = "KZT"

// IngestService CSV 数据导入。格式错误的数值在进入核心计算前被拒绝。
type IngestService struct {
	tenders   domain.TenderRepository
	suppliers domain.SupplierRepository
	risk      *RiskService
}

// NewIngestService 创建新的 IngestService 实例
func NewIngestService(tenders domain.TenderRepository, suppliers domain.SupplierRepository, risk *RiskService) *IngestService {
	return &IngestService{
		tenders:   tenders,
		suppliers: suppliers,
		risk:      risk,
	}
}

// IngestTendersCSV 导入招标 CSV，每条创建后立即做一次初始风险计算。
func (s *IngestService) IngestTendersCSV(ctx context.Context, r io.Reader) ([]TenderDTO, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	created := make([]TenderDTO, 0, len(rows))
	for i, row := range rows {
		tender, err := tenderFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if err := s.tenders.Create(ctx, tender); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if _, err := s.risk.RecomputeRisk(ctx, tender.ID); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		// 重新加载,返回带初始分数的记录
		stored, err := s.tenders.Get(ctx, tender.ID)
		if err != nil {
			return nil, err
		}
		created = append(created, toTenderDTO(stored))
	}
	return created, nil
}

// IngestSuppliersCSV 导入供应商 CSV
func (s *IngestService) IngestSuppliersCSV(ctx context.Context, r io.Reader) ([]SupplierDTO, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	created := make([]SupplierDTO, 0, len(rows))
	for i, row := range rows {
		supplier, err := supplierFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if err := s.suppliers.Create(ctx, supplier); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		created = append(created, toSupplierDTO(supplier))
	}
	return created, nil
}

// readCSV 读取带表头的 CSV，返回按列名索引的行
func readCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.ToLower(header[i]))
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func tenderFromRow(row map[string]string) (*domain.Tender, error) {
	tender := &domain.Tender{
		ExternalID:    row["external_id"],
		Platform:      row["platform"],
		CustomerName:  row["customer_name"],
		Subject:       row["subject"],
		Description:   row["description"],
		PriceCurrency: row["price_currency"],
		Category:      row["category"],
		Region:        row["region"],
		RiskLevel:     domain.RiskLevelLow,
	}
	if tender.PriceCurrency == "" {
		tender.PriceCurrency = defaultCurrency
	}

	if v := row["price_amount"]; v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid price_amount %q: %w", v, err)
		}
		tender.PriceAmount = &price
	}

	var err error
	if tender.BidStartDate, err = parseDate(row["bid_start_date"]); err != nil {
		return nil, err
	}
	if tender.BidEndDate, err = parseDate(row["bid_end_date"]); err != nil {
		return nil, err
	}
	if tender.DeliveryDeadline, err = parseDate(row["delivery_deadline"]); err != nil {
		return nil, err
	}
	return tender, nil
}

func supplierFromRow(row map[string]string) (*domain.Supplier, error) {
	supplier := &domain.Supplier{
		Name:       row["name"],
		BinIIN:     row["bin_iin"],
		Categories: row["categories"],
	}
	if supplier.Name == "" {
		return nil, fmt.Errorf("missing supplier name")
	}
	if v := row["region"]; v != "" {
		supplier.Region = &v
	}

	if v := row["avg_contract_size"]; v != "" {
		size, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid avg_contract_size %q: %w", v, err)
		}
		supplier.AvgContractSize = &size
	}
	if v := row["contracts_count"]; v != "" {
		count, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid contracts_count %q: %w", v, err)
		}
		supplier.ContractsCount = &count
	}
	if v := row["win_rate"]; v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid win_rate %q: %w", v, err)
		}
		supplier.WinRate = &rate
	}
	return supplier, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return &t, nil
}
