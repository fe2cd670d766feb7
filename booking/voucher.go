package booking

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"tripandtreat/db"
	"tripandtreat/models"
	"tripandtreat/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

var voucherSecretWarn sync.Once

func voucherSecret() []byte {
	if s := os.Getenv("VOUCHER_SECRET"); s != "" {
		return []byte(s)
	}
	voucherSecretWarn.Do(func() {
		log.Println("VOUCHER_SECRET not set; using dev fallback, set it in production")
	})
	// dev fallback; set VOUCHER_SECRET in production
	return []byte("tripandtreat-voucher-secret")
}

// signVoucher returns "bookingID|userID|signature"; scanning the QR at
// check-in verifies the signature against the same secret.
func signVoucher(bookingID, userID string) string {
	data := fmt.Sprintf("%s|%s", bookingID, userID)
	h := hmac.New(sha256.New, voucherSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// GET /api/bookings/:id/voucher
func PrintVoucher(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	bookingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var bk models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&bk); err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}
	if bk.UserID != userID && utils.GetRoleFromRequest(r) != models.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if bk.Status != models.BookingConfirmed {
		http.Error(w, "Voucher available for confirmed bookings only", http.StatusConflict)
		return
	}

	qrPNG, err := qrcode.Encode(signVoucher(bk.BookingID, bk.UserID), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Trip & Treat Booking Voucher")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Booking ID: %s", bk.BookingID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Kind: %s", bk.Kind))
	pdf.Ln(8)
	if bk.Kind == models.BookingKindStay {
		pdf.Cell(0, 10, fmt.Sprintf("Check-in: %s   Check-out: %s", bk.CheckIn, bk.CheckOut))
		pdf.Ln(8)
		pdf.Cell(0, 10, fmt.Sprintf("Guests: %d", bk.Guests))
		pdf.Ln(8)
	} else {
		pdf.Cell(0, 10, fmt.Sprintf("Transport: %s   Stops: %d", bk.Mode, bk.Stops))
		pdf.Ln(8)
		if bk.WithGuide {
			pdf.Cell(0, 10, "Local guide included")
			pdf.Ln(8)
		}
	}
	pdf.Cell(0, 10, fmt.Sprintf("Amount: %.2f INR", bk.Amount))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=voucher-"+bk.BookingID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
