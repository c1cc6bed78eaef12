package bookings

import (
	"fmt"

	"github.com/google/uuid"
)

// refundNamespace пространство имён UUID v5 для ключей идемпотентности возвратов
var refundNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://smc.local/court-booking/refunds"))

// selfCancelRefundKey ключ возврата при самостоятельной отмене в бесплатном окне
func selfCancelRefundKey(bookingID int64) string {
	return uuid.NewSHA1(refundNamespace, []byte(fmt.Sprintf("booking:%d:self-cancel", bookingID))).String()
}

// requestRefundKey ключ возврата при одобрении заявки
func requestRefundKey(requestID int64) string {
	return uuid.NewSHA1(refundNamespace, []byte(fmt.Sprintf("request:%d:refund", requestID))).String()
}

// raincheckRefundKey ключ возврата при пакетном переносе тренером
func raincheckRefundKey(bookingID int64) string {
	return uuid.NewSHA1(refundNamespace, []byte(fmt.Sprintf("booking:%d:raincheck", bookingID))).String()
}
