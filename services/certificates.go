package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/edumesh/Backend_ELearning/db"
	"github.com/edumesh/Backend_ELearning/models"
	"github.com/edumesh/Backend_ELearning/res"
	"github.com/edumesh/Backend_ELearning/stack"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var certificatesService *CertificatesService

type CertificatesService struct{}

// BuildCertificatePDF renders the pass certificate
func BuildCertificatePDF(studentName, testTitle, serial string, issuedAt time.Time) (*bytes.Buffer, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	defer pdf.Close()

	pdf.AddPage()
	width, height := pdf.GetPageSize()
	center := width / 2

	pdf.SetFont("Helvetica", "B", 30)
	pdf.Text(center-pdf.GetStringWidth("Certificate of Achievement")/2, 50, "Certificate of Achievement")

	pdf.SetFont("Helvetica", "", 14)
	pdf.Text(center-pdf.GetStringWidth("This certifies that")/2, 75, "This certifies that")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(center-pdf.GetStringWidth(studentName)/2, 95, studentName)

	passedText := fmt.Sprintf("has passed %s", testTitle)
	pdf.SetFont("Helvetica", "", 14)
	pdf.Text(center-pdf.GetStringWidth(passedText)/2, 115, passedText)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(5, height-10, fmt.Sprintf("Issued %s", issuedAt.Format("2006-01-02")))
	pdf.Text(5, height-5, fmt.Sprintf("Serial %s", serial))
	pdf.Text(width-5-pdf.GetStringWidth(settingsData.PLATFORM_NAME), height-5, settingsData.PLATFORM_NAME)

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, err
	}
	return &buffer, nil
}

// GetCertificate issues the certificate for a passed attempt. Issuing is
// lazy and idempotent; the stored key is reused on later calls
func (c *CertificatesService) GetCertificate(
	idAttempt string,
	claims *Claims,
) (map[string]interface{}, *res.ErrorRes) {
	attempt, errRes := NewAttemptsService().GetAttempt(idAttempt, claims)
	if errRes != nil {
		return nil, errRes
	}
	if !attempt.Completed {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("Attempt is not completed yet"),
			StatusCode: http.StatusBadRequest,
		}
	}
	test, errRes := NewMockTestsService().getMockTestFromId(attempt.MockTest.Hex())
	if errRes != nil {
		return nil, errRes
	}
	if attempt.TotalScore < test.PassScore {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("The attempt did not reach the pass score"),
			StatusCode: http.StatusBadRequest,
		}
	}
	if attempt.Certificate != nil {
		return map[string]interface{}{
			"key":       attempt.Certificate.Key,
			"serial":    attempt.Certificate.Serial,
			"issued_at": attempt.Certificate.IssuedAt.Time(),
		}, nil
	}
	issuedAt := time.Now()
	serial := uuid.New().String()
	pdf, err := BuildCertificatePDF(c.studentName(claims), test.Title, serial, issuedAt)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusInternalServerError,
		}
	}
	key := fmt.Sprintf("certificates/%s.pdf", serial)
	if _, err := aws.UploadBytes(bytes.NewReader(pdf.Bytes()), key, "application/pdf"); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	certificate := &models.AttemptCertificate{
		Key:      key,
		Serial:   serial,
		IssuedAt: primitive.NewDateTimeFromTime(issuedAt),
	}
	_, err = attemptModel.Use().UpdateByID(db.Ctx, attempt.ID, bson.D{{
		Key: "$set",
		Value: bson.M{
			"certificate": certificate,
		},
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return map[string]interface{}{
		"key":       key,
		"serial":    serial,
		"issued_at": issuedAt,
	}, nil
}


// studentName resolves the display name, asking the users service when the
// token does not carry one
func (c *CertificatesService) studentName(claims *Claims) string {
	if claims.Name != "" {
		return claims.Name
	}
	data, err := formatRequestToNodeNats(claims.ID)
	if err != nil {
		return claims.ID
	}
	msg, err := nats.Request("get_user_name", data)
	if err != nil {
		return claims.ID
	}
	var response stack.NatsNestJSRes
	if err := json.Unmarshal(msg.Data, &response); err != nil {
		return claims.ID
	}
	if name, ok := response.Response.(string); ok && name != "" {
		return name
	}
	return claims.ID
}

func NewCertificatesService() *CertificatesService {
	if certificatesService == nil {
		certificatesService = &CertificatesService{}
	}
	return certificatesService
}
