package container

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/jobflow/jobflow/internal/events"
	"github.com/jobflow/jobflow/internal/messaging"
	"github.com/jobflow/jobflow/internal/notification"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// consumerGroupName identifies the notifier's Redis Streams consumer group.
const consumerGroupName = "notifier"

// PublisherGroupPackage provides the event publisher and the typed publish
// functions the services depend on.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NewStdLogger(false, false))
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[events.ResumeParsedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[events.ResumeParsedEvent](group.Publisher(), events.TopicResumeParsed), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[events.ApplicationSubmittedEvent], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[events.ApplicationSubmittedEvent](group.Publisher(), events.TopicApplicationSubmitted), nil
	})
}

// ConsumerGroupPackage provides the consumer group that turns domain events
// into user notifications.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)
		svc := do.MustInvoke[*notification.Service](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: consumerGroupName,
		}, watermill.NewStdLogger(false, false))
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(
			subscriber,
			events.TopicApplicationSubmitted,
			notification.ApplicationSubmittedHandler(svc, logger),
			logger,
		))
		group.Add(messaging.NewConsumer(
			subscriber,
			events.TopicResumeParsed,
			notification.ResumeParsedHandler(svc, logger),
			logger,
		))

		return group, nil
	})
}
