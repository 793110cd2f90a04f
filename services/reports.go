package services

import (
	"fmt"
	"io"
	"net/http"

	"github.com/edumesh/Backend_ELearning/db"
	"github.com/edumesh/Backend_ELearning/models"
	"github.com/edumesh/Backend_ELearning/res"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var reportsService *ReportsService

type ReportsService struct{}

// ExportAttempts writes an xlsx with every attempt of a mock test
func (r *ReportsService) ExportAttempts(idTest string, w io.Writer) (*excelize.File, *res.ErrorRes) {
	test, errRes := NewMockTestsService().getMockTestFromId(idTest)
	if errRes != nil {
		return nil, errRes
	}
	opts := options.Find().SetSort(bson.D{{
		Key:   "start_time",
		Value: -1,
	}})
	cursor, err := attemptModel.GetAll(bson.D{{
		Key:   "mock_test",
		Value: test.ID,
	}}, opts)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var attempts []models.MockTestAttempt
	if err := cursor.All(db.Ctx, &attempts); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	// Init file
	file := excelize.NewFile()
	sheetName := "Attempts"
	file.SetSheetName("Sheet1", sheetName)
	// Set columns
	file.SetCellValue(sheetName, "A1", "User")
	file.SetCellValue(sheetName, "B1", "Started")
	file.SetCellValue(sheetName, "C1", "Completed")
	file.SetCellValue(sheetName, "D1", "Total score")
	file.SetCellValue(sheetName, "E1", "Passed")
	// Set values
	for i, attempt := range attempts {
		row := i + 2
		file.SetCellValue(sheetName, fmt.Sprintf("A%v", row), attempt.User.Hex())
		file.SetCellValue(sheetName, fmt.Sprintf("B%v", row), attempt.StartTime.Time().Format("2006-01-02 15:04"))
		file.SetCellValue(sheetName, fmt.Sprintf("C%v", row), attempt.Completed)
		file.SetCellValue(sheetName, fmt.Sprintf("D%v", row), attempt.TotalScore)
		file.SetCellValue(sheetName, fmt.Sprintf("E%v", row), attempt.Completed && attempt.TotalScore >= test.PassScore)
	}
	if err := file.Write(w); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusInternalServerError,
		}
	}
	return file, nil
}

// ExportPurchases writes an xlsx with every purchase
func (r *ReportsService) ExportPurchases(w io.Writer) (*excelize.File, *res.ErrorRes) {
	purchases, errRes := NewPurchasesService().GetAllPurchases()
	if errRes != nil {
		return nil, errRes
	}
	file := excelize.NewFile()
	sheetName := "Purchases"
	file.SetSheetName("Sheet1", sheetName)
	file.SetCellValue(sheetName, "A1", "Order")
	file.SetCellValue(sheetName, "B1", "User")
	file.SetCellValue(sheetName, "C1", "Course")
	file.SetCellValue(sheetName, "D1", "Amount")
	file.SetCellValue(sheetName, "E1", "Currency")
	file.SetCellValue(sheetName, "F1", "Status")
	file.SetCellValue(sheetName, "G1", "Date")
	for i, purchase := range purchases {
		row := i + 2
		file.SetCellValue(sheetName, fmt.Sprintf("A%v", row), purchase.OrderID)
		file.SetCellValue(sheetName, fmt.Sprintf("B%v", row), purchase.User.Hex())
		file.SetCellValue(sheetName, fmt.Sprintf("C%v", row), purchase.Course.Hex())
		file.SetCellValue(sheetName, fmt.Sprintf("D%v", row), purchase.Amount)
		file.SetCellValue(sheetName, fmt.Sprintf("E%v", row), purchase.Currency)
		file.SetCellValue(sheetName, fmt.Sprintf("F%v", row), purchase.Status)
		file.SetCellValue(sheetName, fmt.Sprintf("G%v", row), purchase.DateUpload.Time().Format("2006-01-02 15:04"))
	}
	if err := file.Write(w); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusInternalServerError,
		}
	}
	return file, nil
}

func NewReportsService() *ReportsService {
	if reportsService == nil {
		reportsService = &ReportsService{}
	}
	return reportsService
}
