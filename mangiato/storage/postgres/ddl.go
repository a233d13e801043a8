package postgres

const ddlBase = `
CREATE TABLE IF NOT EXISTS meta (
  key   TEXT PRIMARY KEY,
  value TEXT
);

CREATE TABLE IF NOT EXISTS users (
  id             BIGSERIAL PRIMARY KEY,
  username       TEXT UNIQUE NOT NULL,
  first_name     TEXT NOT NULL DEFAULT '',
  last_name      TEXT NOT NULL DEFAULT '',
  confirmed      BOOLEAN NOT NULL DEFAULT FALSE,
  confirmed_on   TEXT,
  attempts_login BIGINT NOT NULL DEFAULT 0,
  blocked        BOOLEAN NOT NULL DEFAULT FALSE,
  created_at     BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS profiles (
  user_id          BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
  maximum_calories DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS meals (
  id            BIGSERIAL PRIMARY KEY,
  user_id       BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  meal_date     TEXT NOT NULL,
  meal_time     TEXT NOT NULL,
  description   TEXT NOT NULL DEFAULT '',
  calories      DOUBLE PRECISION,
  within_budget BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_meals_user_day ON meals(user_id, meal_date, meal_time);

CREATE TABLE IF NOT EXISTS invitations (
  id         BIGSERIAL PRIMARY KEY,
  email      TEXT UNIQUE NOT NULL,
  token      TEXT NOT NULL,
  status     TEXT NOT NULL,
  created_at BIGINT NOT NULL
);
`
