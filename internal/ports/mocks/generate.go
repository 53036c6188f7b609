//go:generate mockgen -source=../article_repository.go -destination=./mock_article_repository.go -package=mocks
//go:generate mockgen -source=../knowledge_client.go   -destination=./mock_knowledge_client.go   -package=mocks
//go:generate mockgen -source=../operation_cache.go    -destination=./mock_operation_cache.go    -package=mocks
//go:generate mockgen -source=../validator.go          -destination=./mock_validator.go          -package=mocks
//go:generate mockgen -source=../logger.go             -destination=./mock_logger.go             -package=mocks
//go:generate mockgen -source=../message_consumer.go   -destination=./mock_message_consumer.go   -package=mocks
//go:generate mockgen -source=../article_service.go    -destination=./mock_article_service.go    -package=mocks

package mocks
