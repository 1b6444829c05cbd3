// Package backup dumps the orders sheet to CSV and ships it to the
// off-site SFTP drop configured by the business.
package backup

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/pkg/sftp"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
	"gorm.io/gorm"

	"github.com/primecut/storefront/config"
	"github.com/primecut/storefront/internal/domain"
)

// sheetRow carries the orders-sheet column headers into the CSV dump.
type sheetRow struct {
	OrderID        string `csv:"Order ID"`
	DateTime       string `csv:"Date/Time"`
	FirstName      string `csv:"First Name"`
	LastName       string `csv:"Last Name"`
	Email          string `csv:"Email"`
	Phone          string `csv:"Phone"`
	DeliveryMethod string `csv:"Delivery Method"`
	ItemName       string `csv:"Item Name"`
	Quantity       string `csv:"Quantity"`
	PriceEach      string `csv:"Price Each"`
	ItemTotal      string `csv:"Item Total"`
	Subtotal       string `csv:"Subtotal"`
	DeliveryFee    string `csv:"Delivery Fee"`
	Total          string `csv:"Total"`
	Status         string `csv:"Status"`
}

type Runner struct {
	db  *gorm.DB
	cfg config.BackupConfig
}

func NewRunner(db *gorm.DB, cfg config.BackupConfig) *Runner {
	return &Runner{db: db, cfg: cfg}
}

// Run dumps all order rows in sheet order and uploads the dated file.
func (r *Runner) Run(ctx context.Context) error {
	var rows []domain.OrderRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return errors.Wrap(err, "load order rows")
	}

	out := make([]sheetRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, sheetRow{
			OrderID:        row.OrderID,
			DateTime:       row.OrderedAt.Format("1/2/2006, 3:04:05 PM"),
			FirstName:      row.FirstName,
			LastName:       row.LastName,
			Email:          row.Email,
			Phone:          row.Phone,
			DeliveryMethod: row.DeliveryMethod,
			ItemName:       row.ItemName,
			Quantity:       row.Quantity,
			PriceEach:      row.PriceEach,
			ItemTotal:      row.ItemTotal,
			Subtotal:       row.Subtotal,
			DeliveryFee:    row.DeliveryFee,
			Total:          row.Total,
			Status:         row.Status,
		})
	}

	data, err := gocsv.MarshalString(&out)
	if err != nil {
		return errors.Wrap(err, "marshal orders csv")
	}

	name := fmt.Sprintf("orders_%s.csv", time.Now().Format("20060102"))
	if err := r.upload(name, []byte(data)); err != nil {
		return err
	}
	zap.L().Info("orders backup uploaded",
		zap.String("file", name), zap.Int("rows", len(out)))
	return nil
}

func (r *Runner) upload(name string, data []byte) error {
	addr := fmt.Sprintf("%s:%d", r.cfg.Host, r.cfg.Port)
	conn, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            r.cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(r.cfg.Passwd)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         30 * time.Second,
	})
	if err != nil {
		return errors.Wrap(err, "dial backup host")
	}
	defer conn.Close()

	client, err := sftp.NewClient(conn)
	if err != nil {
		return errors.Wrap(err, "open sftp session")
	}
	defer client.Close()

	if err := client.MkdirAll(r.cfg.Dir); err != nil {
		return errors.Wrap(err, "create backup dir")
	}
	f, err := client.Create(path.Join(r.cfg.Dir, name))
	if err != nil {
		return errors.Wrap(err, "create backup file")
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return errors.Wrap(err, "write backup file")
	}
	return nil
}
