package repositories

import (
	"github.com/raymundoht/Task-Manager/models"

	"github.com/gocql/gocql"
	"github.com/sirupsen/logrus"
)

// notificationBucket is the single partition all notifications share so
// the clustering order gives a global newest-first feed.
const notificationBucket = "global"

type NotificationRepository interface {
	Insert(notification *models.Notification) error
	// FindRecent returns at most limit notifications, newest first.
	FindRecent(limit int) ([]models.Notification, error)
}

type CassandraNotificationRepository struct {
	session *gocql.Session
	logger  *logrus.Logger
}

func NewCassandraNotificationRepository(host string, logger *logrus.Logger) (*CassandraNotificationRepository, error) {
	cluster := gocql.NewCluster(host)
	cluster.Keyspace = "system"
	session, err := cluster.CreateSession()
	if err != nil {
		logger.Errorf("Event ID: CASS_CONNECT_FAILED, Description: Failed to connect to Cassandra: %v", err)
		return nil, err
	}

	err = session.Query(
		`CREATE KEYSPACE IF NOT EXISTS notifications
         WITH replication = {
             'class': 'SimpleStrategy',
             'replication_factor': 1
         }`).Exec()
	if err != nil {
		logger.Errorf("Event ID: CASS_KEYSPACE_FAILED, Description: Failed to create keyspace: %v", err)
		return nil, err
	}
	session.Close()

	cluster.Keyspace = "notifications"
	cluster.Consistency = gocql.One
	session, err = cluster.CreateSession()
	if err != nil {
		logger.Errorf("Event ID: CASS_KEYSPACE_CONNECT_FAILED, Description: Failed to connect to notifications keyspace: %v", err)
		return nil, err
	}

	logger.Info("Event ID: CASS_CONNECTED, Description: Connected to Cassandra notifications keyspace.")
	return &CassandraNotificationRepository{
		session: session,
		logger:  logger,
	}, nil
}

func (r *CassandraNotificationRepository) CloseSession() {
	r.session.Close()
	r.logger.Info("Event ID: CASS_SESSION_CLOSED, Description: Cassandra session closed.")
}

// CreateTable creates the notifications table if it does not exist.
func (r *CassandraNotificationRepository) CreateTable() {
	err := r.session.Query(
		`CREATE TABLE IF NOT EXISTS notifications (
			bucket TEXT,
			id UUID,
			user_id TEXT,
			message TEXT,
			created_at TIMESTAMP,
			PRIMARY KEY ((bucket), created_at, id)
		) WITH CLUSTERING ORDER BY (created_at DESC, id ASC)`).Exec()
	if err != nil {
		r.logger.Errorf("Event ID: CASS_TABLE_FAILED, Description: Failed to create notifications table: %v", err)
	} else {
		r.logger.Info("Event ID: CASS_TABLE_READY, Description: Notifications table ready.")
	}
}

func (r *CassandraNotificationRepository) Insert(notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = gocql.TimeUUID().String()
	}

	err := r.session.Query(
		`INSERT INTO notifications (bucket, id, user_id, message, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		notificationBucket, notification.ID, notification.UserID, notification.Message, notification.CreatedAt,
	).Exec()
	if err != nil {
		r.logger.Errorf("Event ID: NOTIFICATION_INSERT_FAILED, Description: Failed to insert notification: %v", err)
		return err
	}
	return nil
}

func (r *CassandraNotificationRepository) FindRecent(limit int) ([]models.Notification, error) {
	query := `SELECT id, user_id, message, created_at
			  FROM notifications WHERE bucket = ? LIMIT ?`

	iter := r.session.Query(query, notificationBucket, limit).Iter()
	var notifications []models.Notification
	var notification models.Notification

	for iter.Scan(&notification.ID, &notification.UserID, &notification.Message, &notification.CreatedAt) {
		notifications = append(notifications, notification)
	}

	if err := iter.Close(); err != nil {
		r.logger.Errorf("Event ID: NOTIFICATION_FETCH_FAILED, Description: Failed to retrieve notifications: %v", err)
		return nil, err
	}

	return notifications, nil
}
